package adapters

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"google.golang.org/genai"
)

// ErrNoImage は画像生成応答に画像が1枚も含まれていないことを表します。
var ErrNoImage = errors.New("image generation failed to produce an image")

// responseText は最初の候補からテキストパーツを連結して返します。思考パーツは除外します。
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("empty response from model")
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return "", fmt.Errorf("prompt was blocked (BlockReason: %s)", fb.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	// 最初の候補のみを利用する。
	candidate := resp.Candidates[0]
	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
	}

	if sb.Len() == 0 && candidate.FinishReason != "" &&
		candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return "", fmt.Errorf("generation finished abnormally (FinishReason: %s)", candidate.FinishReason)
	}
	return sb.String(), nil
}

// parseImageResponse は最初の空でない画像を返します。
// 安全フィルターで全て除外された場合は理由をエラーに含めます。
func parseImageResponse(resp *genai.GenerateImagesResponse, requestedMIME string) (*domain.ImageResponse, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return nil, ErrNoImage
	}

	var reasons []string
	for _, gen := range resp.GeneratedImages {
		if gen == nil {
			continue
		}
		if gen.Image != nil && len(gen.Image.ImageBytes) > 0 {
			mimeType := gen.Image.MIMEType
			if mimeType == "" {
				mimeType = requestedMIME
			}
			return &domain.ImageResponse{Data: gen.Image.ImageBytes, MimeType: mimeType}, nil
		}
		if gen.RAIFilteredReason != "" {
			reasons = append(reasons, gen.RAIFilteredReason)
		}
	}

	if len(reasons) > 0 {
		return nil, fmt.Errorf("%w (filtered: %s)", ErrNoImage, strings.Join(reasons, "; "))
	}
	return nil, ErrNoImage
}
