package generator

import "google.golang.org/genai"

const (
	fieldDescription = "description"
	fieldImagePrompt  = "image_prompt"
)

// SceneSchema はシーン抽出時にモデルへ渡す応答スキーマです。
// description と image_prompt を必須とするオブジェクトの配列を要求します。
func SceneSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				fieldDescription: {
					Type:        genai.TypeString,
					Description: "A brief summary of the action or dialogue in the scene.",
				},
				fieldImagePrompt: {
					Type:        genai.TypeString,
					Description: "A detailed, vivid, and cinematic prompt for an AI image generator, describing characters, setting, lighting, camera angle, and mood.",
				},
			},
			Required:         []string{fieldDescription, fieldImagePrompt},
			PropertyOrdering: []string{fieldDescription, fieldImagePrompt},
		},
	}
}

// sceneJSONSchema は SceneSchema と同じ構造を JSON Schema で表したものです。
// モデルはスキーマに従わないことがあるため、受信側で改めて検証します。
const sceneJSONSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "description":  { "type": "string", "minLength": 1, "pattern": "\\S" },
      "image_prompt": { "type": "string", "minLength": 1, "pattern": "\\S" }
    },
    "required": ["description", "image_prompt"]
  }
}`
