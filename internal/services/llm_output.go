package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rafabene/aeo-studio/internal/domain/errors"
)

const llmSource = "llm"

// firstBalanced devolve o primeiro trecho balanceado entre open e close,
// ignorando delimitadores dentro de strings JSON.
func firstBalanced(text string, opening, closing byte) (string, bool) {
	start := strings.IndexByte(text, opening)
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}

// decodeObject extrai e decodifica o primeiro objeto JSON da saída do modelo
func decodeObject(output string, v any) error {
	return decodeBalanced(output, '{', '}', v)
}

// decodeArray extrai e decodifica o primeiro array JSON da saída do modelo
func decodeArray(output string, v any) error {
	return decodeBalanced(output, '[', ']', v)
}

func decodeBalanced(output string, opening, closing byte, v any) error {
	fragment, ok := firstBalanced(output, opening, closing)
	if !ok {
		return malformed(fmt.Errorf("no JSON %c...%c found", opening, closing))
	}
	if err := json.Unmarshal([]byte(fragment), v); err != nil {
		return malformed(err)
	}
	return nil
}

func malformed(err error) error {
	return errors.Upstream(llmSource, "malformed output", err)
}
