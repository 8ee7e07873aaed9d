package domain

import (
	"errors"
	"fmt"
)

// パイプラインとチャットが返すエラーの分類です。
// 各処理はこれらを %w でラップして返すため、呼び出し側は errors.Is で判定できます。
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrGeneration      = errors.New("generation failed")
	ErrParse           = errors.New("could not parse scenes from the script")
	ErrEmptyResult     = errors.New("no scenes could be generated from the script")
	ErrImageGeneration = errors.New("image generation failed")
	ErrChat            = errors.New("chat request failed")
)

// rawExcerptLen はエラーメッセージに含める生テキストの最大文字数です。
const rawExcerptLen = 200

// ParseError はモデル応答の構造不一致を表します。
// Raw は開発者向けの診断情報で、エンドユーザーには表示しません。
type ParseError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: %s (response excerpt: %q)", ErrParse, e.Reason, Excerpt(e.Raw, rawExcerptLen))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap は ErrParse と原因エラーの両方を返します。
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// RawResponse は err の連鎖に ParseError があれば生テキストを返します。
func RawResponse(err error) (string, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Raw, true
	}
	return "", false
}
