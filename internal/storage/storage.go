package storage

import "errors"

var (
	ErrArtistNotFound            = errors.New("artist not found")
	ErrArtistExists              = errors.New("artist already exists")
	ErrPictureNotFound           = errors.New("picture not found")
	ErrExhibitionNotFound        = errors.New("exhibition not found")
	ErrExhibitionPictureNotFound = errors.New("picture is not in exhibition")
)
