package controllers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/5pponent/diary-server/api/models"
	"github.com/5pponent/diary-server/api/utils/fileformat"
)

const (
	maxImageSize     = 10 << 20
	maxProfileSize   = 2 << 20
	feedImagePrefix  = "FeedImages/"
	profileImgPrefix = "UserProfilePics/"
)

var (
	errFileTooLarge = errors.New("file too large")
	errNotAnImage   = errors.New("not an image")
)

// storeImage uploads one image and returns the unsaved file row pointing at it.
func (server *Server) storeImage(ctx context.Context, header *multipart.FileHeader, prefix string, limit int64) (models.File, error) {
	if header.Size > limit {
		return models.File{}, errFileTooLarge
	}
	f, err := header.Open()
	if err != nil {
		return models.File{}, err
	}
	defer f.Close()

	sniff := make([]byte, 512)
	n, err := io.ReadFull(f, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return models.File{}, err
	}
	contentType := http.DetectContentType(sniff[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return models.File{}, errNotAnImage
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return models.File{}, err
	}

	key := prefix + fileformat.UniqueFormat(header.Filename)
	source, err := server.Files.Put(ctx, key, contentType, f, header.Size)
	if err != nil {
		return models.File{}, err
	}
	file := models.File{OriginalName: header.Filename, Source: source}
	file.Prepare()
	return file, nil
}

func uploadErrorMessage(err error) (int, string) {
	switch {
	case errors.Is(err, errFileTooLarge):
		return http.StatusBadRequest, "File too large"
	case errors.Is(err, errNotAnImage):
		return http.StatusBadRequest, "Not an image"
	default:
		return http.StatusInternalServerError, "Could not store file"
	}
}
