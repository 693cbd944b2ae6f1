package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kailas-cloud/searchtools/internal/domain"
	"github.com/kailas-cloud/searchtools/internal/domain/search/filter"
	"github.com/kailas-cloud/searchtools/internal/domain/search/request"
)

var errIndexRequired = domain.NewArgumentError("index", domain.ErrIndexRequired.Error())

// searchArgs are the arguments shared by every search tool.
type searchArgs struct {
	Keyword              *string           `json:"keyword"`
	Query                *string           `json:"query"`
	FilterConditions     filter.Conditions `json:"filter_conditions"`
	Limit                *int              `json:"limit"`
	Offset               *int              `json:"offset"`
	AttributesToRetrieve []string          `json:"attributes_to_retrieve"`
	Sort                 []string          `json:"sort"`
}

// indexSearchArgs adds the target index for the generic search tool.
type indexSearchArgs struct {
	Index string `json:"index"`
	searchArgs
}

type indexArgs struct {
	Index string `json:"index"`
}

type pageArgs struct {
	Limit  *int `json:"limit"`
	Offset *int `json:"offset"`
}

// keyword prefers keyword over its query alias; both set to different values is an error.
func (a *searchArgs) keyword() (string, error) {
	switch {
	case a.Keyword != nil && a.Query != nil && *a.Keyword != *a.Query:
		return "", domain.NewArgumentError("keyword", "keyword and query differ; pass only one")
	case a.Keyword != nil:
		return *a.Keyword, nil
	case a.Query != nil:
		return *a.Query, nil
	default:
		return "", nil
	}
}

func (a *searchArgs) request() (*request.Request, error) {
	kw, err := a.keyword()
	if err != nil {
		return nil, err
	}
	limit, offset := request.DefaultLimit, 0
	if a.Limit != nil {
		limit = *a.Limit
	}
	if a.Offset != nil {
		offset = *a.Offset
	}
	r, err := request.New(kw, a.FilterConditions, limit, offset, a.AttributesToRetrieve, a.Sort)
	if err != nil {
		return nil, domain.NewArgumentError("keyword", err.Error())
	}
	return &r, nil
}

// decodeArgs decodes a JSON argument object strictly. Empty input means no arguments.
func decodeArgs(raw json.RawMessage, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return argumentError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.NewArgumentError("arguments", "trailing data after JSON object")
	}
	return nil
}

func argumentError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		name := typeErr.Field
		if name == "" {
			name = "arguments"
		}
		return domain.NewArgumentError(name, fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value))
	}
	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, "json: unknown field "); ok {
		return domain.NewArgumentError(strings.Trim(name, `"`), "unknown argument")
	}
	return domain.NewArgumentError("arguments", msg)
}
