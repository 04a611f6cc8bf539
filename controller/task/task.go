package task

import (
	"net/http"

	"taskflow/controller/response"
	"taskflow/dto"
	"taskflow/middleware"
	"taskflow/services"

	"github.com/gin-gonic/gin"
)

func TaskController(router *gin.Engine, taskService *services.TaskService, dashboard *services.DashboardService, auth middleware.Authenticator) {
	routes := router.Group("/tasks", middleware.AccessTokenMiddleware(auth))
	{
		routes.GET("/dashboard-data", func(c *gin.Context) {
			DashboardData(c, dashboard)
		})
		routes.GET("/user-dashboard-data", func(c *gin.Context) {
			UserDashboardData(c, dashboard)
		})
		routes.GET("/my", func(c *gin.Context) {
			MyTasks(c, taskService)
		})
		routes.GET("", func(c *gin.Context) {
			ListTasks(c, taskService)
		})
		routes.GET("/:id", func(c *gin.Context) {
			GetTask(c, taskService)
		})
		routes.POST("", middleware.AdminMiddleware(), func(c *gin.Context) {
			CreateTask(c, taskService)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			UpdateTask(c, taskService)
		})
		routes.DELETE("/:id", middleware.AdminMiddleware(), func(c *gin.Context) {
			DeleteTask(c, taskService)
		})
		routes.PUT("/:id/status", func(c *gin.Context) {
			UpdateTaskStatus(c, taskService)
		})
		routes.PUT("/:id/todo", func(c *gin.Context) {
			UpdateTaskChecklist(c, taskService)
		})
	}
}

func ListTasks(c *gin.Context, taskService *services.TaskService) {
	var query dto.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}
	resp, err := taskService.List(c.Request.Context(), middleware.CurrentUser(c), query.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func MyTasks(c *gin.Context, taskService *services.TaskService) {
	var query dto.TaskListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}
	resp, err := taskService.MyTasks(c.Request.Context(), middleware.CurrentUser(c), query.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func GetTask(c *gin.Context, taskService *services.TaskService) {
	task, err := taskService.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func CreateTask(c *gin.Context, taskService *services.TaskService) {
	var taskReq dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&taskReq); err != nil {
		response.BindError(c, err)
		return
	}
	task, err := taskService.Create(c.Request.Context(), middleware.CurrentUser(c), taskReq)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Task created successfully", "task": task})
}

func UpdateTask(c *gin.Context, taskService *services.TaskService) {
	var taskReq dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&taskReq); err != nil {
		response.BindError(c, err)
		return
	}
	task, err := taskService.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), taskReq)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "updatedTask": task})
}

func DeleteTask(c *gin.Context, taskService *services.TaskService) {
	if err := taskService.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
