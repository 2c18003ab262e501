package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "docvault/internal/errors"
	"docvault/internal/model"
)

func TestUserService_ListUsers(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return([]model.User{
		{ID: uuid.New(), Email: "a@example.com", Role: model.RoleAdmin},
		{ID: uuid.New(), Email: "b@example.com", Role: model.RoleViewer},
	}, nil)

	svc := NewUserService(mockRepo, nil)
	users, err := svc.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUserNotFound(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo, nil)
	user, err := svc.GetUser(context.Background(), id)

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserService_UpdateUserPatchesOnlySetFields(t *testing.T) {
	id := uuid.New()
	stored := &model.User{ID: id, Email: "old@example.com", FirstName: "Old", LastName: "Name", Role: model.RoleViewer}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	svc := NewUserService(mockRepo, nil)
	user, err := svc.UpdateUser(context.Background(), id, "New", "", "")

	assert.NoError(t, err)
	assert.Equal(t, "New", user.FirstName)
	assert.Equal(t, "Name", user.LastName)
	assert.Equal(t, "old@example.com", user.Email)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateRole(t *testing.T) {
	id := uuid.New()

	t.Run("valid role is saved", func(t *testing.T) {
		stored := &model.User{ID: id, Email: "a@example.com", Role: model.RoleViewer}
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(stored, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.UpdateRole(context.Background(), id, model.RoleEditor)

		assert.NoError(t, err)
		assert.Equal(t, model.RoleEditor, user.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown role is rejected before any lookup", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo, nil)

		_, err := svc.UpdateRole(context.Background(), id, model.Role("superuser"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidRole)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	id := uuid.New()

	t.Run("existing user is deleted", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(&model.User{ID: id}, nil)
		mockRepo.On("Delete", mock.Anything, id).Return(nil)

		svc := NewUserService(mockRepo, nil)
		assert.NoError(t, svc.DeleteUser(context.Background(), id))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		assert.ErrorIs(t, svc.DeleteUser(context.Background(), id), apperrors.ErrUserNotFound)
	})
}
