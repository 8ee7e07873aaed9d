package domain

// ImageGenerationRequest は単一の画像生成要求です。
type ImageGenerationRequest struct {
	Prompt         string
	AspectRatio    string
	MimeType       string
	NumberOfImages int32
}

// ImageResponse は生成された画像データとそのメタデータです。
type ImageResponse struct {
	Data     []byte
	MimeType string
}
