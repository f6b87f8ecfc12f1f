package usecase

import "context"

type ImagesInfra interface {
	// UploadImage сохраняет изображение и возвращает публичный URL.
	UploadImage(ctx context.Context, req *UploadImageReq) (string, error)
	CleanupImages(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
