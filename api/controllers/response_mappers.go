package controllers

import (
	"github.com/5pponent/diary-server/api/logging"
	"github.com/5pponent/diary-server/api/models"

	"github.com/jinzhu/copier"
)

func fileToDTO(file models.File) FileDTO {
	return FileDTO{
		ID:           file.ID,
		OriginalName: file.OriginalName,
		Source:       file.Source,
		Description:  file.Description,
		Sequence:     file.Sequence,
	}
}

func imageToDTO(file *models.File) *FileDTO {
	if file == nil || file.ID == 0 {
		return nil
	}
	dto := fileToDTO(*file)
	return &dto
}

func userToDTO(user *models.User) UserDTO {
	var dto UserDTO
	if err := copier.Copy(&dto, user); err != nil {
		logging.Log.WithError(err).Warn("copy user dto")
	}
	dto.OccupationName = user.OccupationName()
	dto.InterestList = user.InterestList()
	dto.Image = imageToDTO(user.ProfileImage)
	return dto
}

func occupationsToDTO(occupations []models.Occupation) []OccupationDTO {
	dtos := make([]OccupationDTO, len(occupations))
	for i, o := range occupations {
		dtos[i] = OccupationDTO{ID: o.ID, Name: o.Name}
	}
	return dtos
}

func userDetailToDTO(detail *models.UserDetail) UserDetailDTO {
	return UserDetailDTO{
		UserDTO:        userToDTO(&detail.User),
		FollowingCount: detail.FollowingCount,
		FollowerCount:  detail.FollowerCount,
		IsFollowed:     detail.IsFollowed,
	}
}

func userViewToDTO(view models.UserView) UserSummaryDTO {
	return UserSummaryDTO{
		ID:         view.User.ID,
		Name:       view.User.Name,
		Email:      view.User.Email,
		Message:    view.User.Message,
		Image:      imageToDTO(view.User.ProfileImage),
		IsFollowed: view.IsFollowed,
	}
}

func writerToDTO(user *models.User, isFollowed *bool) WriterDTO {
	return WriterDTO{
		ID:         user.ID,
		Name:       user.Name,
		Image:      imageToDTO(user.ProfileImage),
		IsFollowed: isFollowed,
	}
}

func feedViewToDTO(view models.FeedView) FeedDTO {
	images := make([]FileDTO, len(view.Feed.Files))
	for i, f := range view.Feed.Files {
		images[i] = fileToDTO(f)
	}
	return FeedDTO{
		ID:           view.Feed.ID,
		Writer:       writerToDTO(&view.Feed.Writer, view.Info.IsFollowed),
		Content:      view.Feed.Content,
		ShowScope:    view.Feed.ShowScope,
		Images:       images,
		CommentCount: view.Info.CommentCount,
		LikeCount:    view.Info.LikeCount,
		IsLiked:      view.Info.IsLiked,
		CreateTime:   view.Feed.CreatedAt.Format(createTimeLayout),
	}
}

func commentViewToDTO(view models.CommentView) CommentDTO {
	isFollowed := view.Info.IsFollowed
	return CommentDTO{
		ID:         view.Comment.ID,
		FeedID:     view.Comment.FeedID,
		ParentID:   view.Comment.ParentID,
		Layer:      view.Comment.Layer,
		Writer:     writerToDTO(&view.Comment.Writer, &isFollowed),
		Content:    view.Comment.Content,
		ChildCount: view.Info.ChildCount,
		LikeCount:  view.Info.LikeCount,
		IsLiked:    view.Info.IsLiked,
		CreateTime: view.Comment.CreatedAt.Format(createTimeLayout),
	}
}

func pageToDTO(info models.PageInfo) PageDTO {
	return PageDTO{
		CurrentPage:   info.CurrentPage,
		TotalPages:    info.TotalPages,
		TotalElements: info.TotalElements,
		NextCursor:    info.NextCursor,
	}
}

func feedPageToDTO(views []models.FeedView, info models.PageInfo) FeedPageDTO {
	feeds := make([]FeedDTO, len(views))
	for i, v := range views {
		feeds[i] = feedViewToDTO(v)
	}
	return FeedPageDTO{PageDTO: pageToDTO(info), Feeds: feeds}
}

func commentPageToDTO(views []models.CommentView, info models.PageInfo) CommentPageDTO {
	comments := make([]CommentDTO, len(views))
	for i, v := range views {
		comments[i] = commentViewToDTO(v)
	}
	return CommentPageDTO{PageDTO: pageToDTO(info), Comments: comments}
}

func userPageToDTO(views []models.UserView, info models.PageInfo) UserPageDTO {
	users := make([]UserSummaryDTO, len(views))
	for i, v := range views {
		users[i] = userViewToDTO(v)
	}
	return UserPageDTO{PageDTO: pageToDTO(info), Users: users}
}
