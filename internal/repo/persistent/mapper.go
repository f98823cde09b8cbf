package persistent

import (
	"maltlog/internal/entity"
	"maltlog/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Handle:    m.Handle,
		Nickname:  m.Nickname,
		Password:  m.Password,
		AvatarURL: m.AvatarURL,
		Role:      entity.UserRole(m.Role),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:        e.ID,
		Email:     e.Email,
		Handle:    e.Handle,
		Nickname:  e.Nickname,
		Password:  e.Password,
		AvatarURL: e.AvatarURL,
		Role:      string(e.Role),
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToWhiskyEntity(m *model.WhiskyModel) *entity.Whisky {
	if m == nil {
		return nil
	}

	return &entity.Whisky{
		ID:         m.ID,
		Name:       m.Name,
		Distillery: m.Distillery,
		Region:     m.Region,
		ABV:        m.ABV,
		ImageURL:   m.ImagePath,
		Featured:   m.Featured,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToReviewEntity(m *model.ReviewModel) *entity.Review {
	if m == nil {
		return nil
	}

	return &entity.Review{
		ID:        m.ID,
		UserID:    m.UserID,
		WhiskyID:  m.WhiskyID,
		Rating:    m.Rating,
		Body:      m.Body,
		ImageURL:  m.ImagePath,
		CreatedAt: m.CreatedAt,
	}
}

func ToReviewModel(e *entity.Review) *model.ReviewModel {
	if e == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:        e.ID,
		UserID:    e.UserID,
		WhiskyID:  e.WhiskyID,
		Rating:    e.Rating,
		Body:      e.Body,
		ImagePath: e.ImageURL,
		CreatedAt: e.CreatedAt,
	}
}

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Body:      m.Body,
		ImageURL:  m.ImagePath,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Body:      e.Body,
		ImagePath: e.ImageURL,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToCommentEntity(m *model.CommentModel, authorNickname string) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:             m.ID,
		UserID:         m.UserID,
		PostID:         m.PostID,
		Body:           m.Body,
		AuthorNickname: authorNickname,
		CreatedAt:      m.CreatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:     e.ID,
		UserID: e.UserID,
		PostID: e.PostID,
		Body:   e.Body,
	}
}
