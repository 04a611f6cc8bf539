package task

import (
	"net/http"

	"taskflow/controller/response"
	"taskflow/dto"
	"taskflow/middleware"
	"taskflow/services"

	"github.com/gin-gonic/gin"
)

func UpdateTaskStatus(c *gin.Context, taskService *services.TaskService) {
	var statusReq dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&statusReq); err != nil {
		response.BindError(c, err)
		return
	}
	task, err := taskService.UpdateStatus(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), statusReq)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task status updated", "task": task})
}

func UpdateTaskChecklist(c *gin.Context, taskService *services.TaskService) {
	var todoReq dto.UpdateChecklistRequest
	if err := c.ShouldBindJSON(&todoReq); err != nil {
		response.BindError(c, err)
		return
	}
	task, err := taskService.UpdateChecklist(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), todoReq)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task checklist updated", "task": task})
}
