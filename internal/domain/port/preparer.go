package port

import "crop-vision/internal/domain/entity"

// ImagePreparer готовит сырые байты к отправке в модель (декодирование, уменьшение, MIME).
type ImagePreparer interface {
	Prepare(raw []byte) (entity.ImageData, error)
}
