package store

import (
	"context"
	"errors"
	"fmt"

	"taskflow/model"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore collection names.
const (
	fsUsers = "Users"
	fsTasks = "Tasks"
)

// FirestoreStore keeps users and tasks as Firestore documents keyed by id.
// Filtered task queries need composite indexes on (assignedTo, status),
// (assignedTo, createdAt) and (status, dueDate).
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Close(context.Context) error {
	return s.client.Close()
}

func (s *FirestoreStore) users() *firestore.CollectionRef { return s.client.Collection(fsUsers) }
func (s *FirestoreStore) tasks() *firestore.CollectionRef { return s.client.Collection(fsTasks) }

func (s *FirestoreStore) CreateUser(ctx context.Context, user *model.User) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(s.users().Where("email", "==", user.Email).Limit(1)).GetAll()
		if err != nil {
			return err
		}
		if len(docs) > 0 {
			return ErrDuplicate
		}
		return tx.Create(s.users().Doc(user.ID), user)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) || status.Code(err) == codes.AlreadyExists {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *FirestoreStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	snap, err := s.users().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func (s *FirestoreStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	docs, err := s.users().Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	var user model.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

func (s *FirestoreStore) GetUsersByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, s.users().Doc(id))
	}
	snaps, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	users := make([]model.User, 0, len(snaps))
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		var user model.User
		if err := snap.DataTo(&user); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *FirestoreStore) ListUsersByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	iter := s.users().Where("role", "==", string(role)).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var users []model.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		var user model.User
		if err := doc.DataTo(&user); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *FirestoreStore) UpdateUser(ctx context.Context, user *model.User) error {
	ref := s.users().Doc(user.ID)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(s.users().Where("email", "==", user.Email).Limit(2)).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if doc.Ref.ID != user.ID {
				return ErrDuplicate
			}
		}
		if _, err := tx.Get(ref); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Set(ref, user)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *FirestoreStore) CreateTask(ctx context.Context, task *model.Task) error {
	if _, err := s.tasks().Doc(task.ID).Create(ctx, task); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrDuplicate
		}
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *FirestoreStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	snap, err := s.tasks().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	var task model.Task
	if err := snap.DataTo(&task); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	return &task, nil
}

// fsClause is one Where condition of a Firestore query.
type fsClause struct {
	Path  string
	Op    string
	Value any
}

// taskClauses maps f onto Firestore conditions. ok is false when the filter
// can never match.
func taskClauses(f TaskFilter) (clauses []fsClause, ok bool) {
	if f.AssignedTo != "" {
		clauses = append(clauses, fsClause{"assignedTo", "array-contains", f.AssignedTo})
	}
	if f.Priority != "" {
		clauses = append(clauses, fsClause{"priority", "==", string(f.Priority)})
	}
	switch {
	case f.OverdueAt.IsZero():
		if f.Status != "" {
			clauses = append(clauses, fsClause{"status", "==", string(f.Status)})
		}
	case f.Status == model.StatusCompleted:
		return nil, false
	case f.Status != "":
		clauses = append(clauses,
			fsClause{"status", "==", string(f.Status)},
			fsClause{"dueDate", "<", f.OverdueAt})
	default:
		clauses = append(clauses,
			fsClause{"status", "in", []string{string(model.StatusPending), string(model.StatusInProgress)}},
			fsClause{"dueDate", "<", f.OverdueAt})
	}
	return clauses, true
}

func (s *FirestoreStore) taskQuery(f TaskFilter) (q firestore.Query, ok bool) {
	clauses, ok := taskClauses(f)
	q = s.tasks().Query
	for _, c := range clauses {
		q = q.Where(c.Path, c.Op, c.Value)
	}
	return q, ok
}

func (s *FirestoreStore) ListTasks(ctx context.Context, tq TaskQuery) ([]model.Task, error) {
	q, ok := s.taskQuery(tq.TaskFilter)
	if !ok {
		return nil, nil
	}
	q = q.OrderBy("createdAt", firestore.Desc)
	if tq.Limit > 0 {
		q = q.Limit(tq.Limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var tasks []model.Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		var task model.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *FirestoreStore) CountTasks(ctx context.Context, f TaskFilter) (int64, error) {
	q, ok := s.taskQuery(f)
	if !ok {
		return 0, nil
	}
	res, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	v, ok := res["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count tasks: unexpected result %T", res["all"])
	}
	return v.GetIntegerValue(), nil
}

// GroupCount issues one COUNT aggregation per known value; Firestore has no
// server-side group by.
func (s *FirestoreStore) GroupCount(ctx context.Context, f TaskFilter, field GroupField) (map[string]int64, error) {
	out := make(map[string]int64)
	switch field {
	case GroupByPriority:
		for _, p := range model.TaskPriorities {
			if f.Priority != "" && f.Priority != p {
				continue
			}
			g := f
			g.Priority = p
			n, err := s.CountTasks(ctx, g)
			if err != nil {
				return nil, err
			}
			out[string(p)] = n
		}
	default:
		for _, st := range model.TaskStatuses {
			if f.Status != "" && f.Status != st {
				continue
			}
			g := f
			g.Status = st
			n, err := s.CountTasks(ctx, g)
			if err != nil {
				return nil, err
			}
			out[string(st)] = n
		}
	}
	return out, nil
}

func (s *FirestoreStore) UpdateTask(ctx context.Context, task *model.Task) error {
	ref := s.tasks().Doc(task.ID)
	next := task.Clone()
	next.Version = task.Version + 1

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var current model.Task
		if err := snap.DataTo(&current); err != nil {
			return err
		}
		if current.Version != task.Version {
			return ErrVersionConflict
		}
		return tx.Set(ref, next)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("update task: %w", err)
	}
	task.Version = next.Version
	return nil
}

func (s *FirestoreStore) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.tasks().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
