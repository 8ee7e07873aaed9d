package generator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/xeipuuv/gojsonschema"
)

// jsonBlockRegex は応答全体が ```json フェンスで囲まれている場合のみ一致します。
var jsonBlockRegex = regexp.MustCompile("(?s)^```(?i:json)?\\s*(.*\\S)\\s*```$")

var sceneSchemaLoader = gojsonschema.NewStringLoader(sceneJSONSchema)

// ParseScenes はモデルの応答テキストをシーンのリストに変換します。
// 応答は構造化出力を要求していても不正な場合があるため、デコード後にスキーマ検証を行います。
// 失敗時は生テキストを保持した *domain.ParseError を返します。
func ParseScenes(raw string) ([]domain.SceneDescriptor, error) {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		if matches := jsonBlockRegex.FindStringSubmatch(text); len(matches) > 1 {
			text = matches[1]
		}
	}
	if text == "" {
		return nil, &domain.ParseError{Reason: "empty response", Raw: raw}
	}

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &domain.ParseError{Reason: "invalid JSON", Raw: raw, Err: err}
	}
	if _, ok := doc.([]any); !ok {
		return nil, &domain.ParseError{Reason: "parsed response is not an array", Raw: raw}
	}

	result, err := gojsonschema.Validate(sceneSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, &domain.ParseError{Reason: "schema validation could not run", Raw: raw, Err: err}
	}
	if !result.Valid() {
		return nil, &domain.ParseError{Reason: describeViolations(result.Errors()), Raw: raw}
	}

	var scenes []domain.SceneDescriptor
	if err := json.Unmarshal([]byte(text), &scenes); err != nil {
		return nil, &domain.ParseError{Reason: "invalid scene list", Raw: raw, Err: err}
	}
	return scenes, nil
}

func describeViolations(errs []gojsonschema.ResultError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	return "schema violation: " + strings.Join(msgs, "; ")
}
