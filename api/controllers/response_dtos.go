package controllers

const createTimeLayout = "2006-01-02 15:04"

type FileDTO struct {
	ID           uint   `json:"id"`
	OriginalName string `json:"originalName"`
	Source       string `json:"source"`
	Description  string `json:"description"`
	Sequence     int    `json:"sequence"`
}

type UserDTO struct {
	ID             uint     `json:"id"`
	UID            string   `json:"uid"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Message        string   `json:"message"`
	OccupationName string   `json:"occupation"`
	InterestList   []string `json:"interests"`
	Image          *FileDTO `json:"image"`
}

type OccupationDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type UserDetailDTO struct {
	UserDTO
	FollowingCount int64 `json:"followingCount"`
	FollowerCount  int64 `json:"followerCount"`
	IsFollowed     bool  `json:"isFollowed"`
}

// UserSummaryDTO is a list entry: follow lists, search results, like lists.
type UserSummaryDTO struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Message    string   `json:"message"`
	Image      *FileDTO `json:"image"`
	IsFollowed bool     `json:"isFollowed"`
}

type WriterDTO struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Image      *FileDTO `json:"image"`
	IsFollowed *bool    `json:"isFollowed,omitempty"`
}

type FeedDTO struct {
	ID           uint      `json:"id"`
	Writer       WriterDTO `json:"writer"`
	Content      string    `json:"content"`
	ShowScope    string    `json:"showScope"`
	Images       []FileDTO `json:"images"`
	CommentCount int64     `json:"commentCount"`
	LikeCount    int64     `json:"likeCount"`
	IsLiked      bool      `json:"isLiked"`
	CreateTime   string    `json:"createTime"`
}

type CommentDTO struct {
	ID         uint      `json:"id"`
	FeedID     uint      `json:"feedId"`
	ParentID   *uint     `json:"parentId"`
	Layer      int       `json:"layer"`
	Writer     WriterDTO `json:"writer"`
	Content    string    `json:"content"`
	ChildCount int64     `json:"childCount"`
	LikeCount  int64     `json:"likeCount"`
	IsLiked    bool      `json:"isLiked"`
	CreateTime string    `json:"createTime"`
}

type LoginDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// PageDTO carries the paging fields of a listing next to its items.
type PageDTO struct {
	CurrentPage   int   `json:"currentPage,omitempty"`
	TotalPages    int   `json:"totalPages,omitempty"`
	TotalElements int64 `json:"totalElements,omitempty"`
	NextCursor    *uint `json:"nextCursor,omitempty"`
}

type FeedPageDTO struct {
	PageDTO
	Feeds []FeedDTO `json:"feeds"`
}

type CommentPageDTO struct {
	PageDTO
	Comments []CommentDTO `json:"comments"`
}

type UserPageDTO struct {
	PageDTO
	Users []UserSummaryDTO `json:"users"`
}
