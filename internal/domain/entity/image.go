package entity

// Image файл из каталога с изображениями. Идентичность — имя файла.
type Image struct {
	Name string
	Data []byte
}

// ImageData подготовленная картинка для отправки в модель.
// Имени файла здесь нет намеренно: модель видит только пиксели.
type ImageData struct {
	Bytes    []byte
	MIMEType string
}
