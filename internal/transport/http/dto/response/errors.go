package response

const (
	PrefixCreate = "Ошибка создания"
	PrefixUpdate = "Ошибка обновления"
	PrefixDelete = "Ошибка удаления"

	MsgPictureDeleted    = "Картина успешно удалена"
	MsgArtistDeleted     = "Художник успешно удален"
	MsgExhibitionDeleted = "Выставка успешно удалена"
)

var (
	ErrPictureRequiredFields = ErrorResponse{
		Error: "Обязательные поля: title, artist, imageUrl",
	}

	ErrArtistRequiredFields = ErrorResponse{
		Error: "Обязательное поле: name",
	}

	ErrExhibitionRequiredFields = ErrorResponse{
		Error: "Обязательные поля: title, startDate, endDate",
	}

	ErrInvalidRequestFormat = ErrorResponse{
		Error: "Неверный формат запроса",
	}

	ErrPictureNotFound = ErrorResponse{
		Error: "Картина не найдена",
	}

	ErrArtistNotFound = ErrorResponse{
		Error: "Художник не найден",
	}

	ErrExhibitionNotFound = ErrorResponse{
		Error: "Выставка не найдена",
	}

	ErrExhibitionPictureNotFound = ErrorResponse{
		Error: "Картина не найдена на выставке",
	}

	ErrArtistAlreadyExists = ErrorResponse{
		Error: "Художник с таким именем уже существует",
	}

	ErrInternal = ErrorResponse{
		Error: "Внутренняя ошибка сервера",
	}
)

func ErrAPIRouteNotFound(path string) ErrorResponse {
	return ErrorResponse{
		Error: "API маршрут не найден",
		Path:  path,
	}
}
