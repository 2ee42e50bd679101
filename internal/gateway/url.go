package gateway

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
)

// Query holds request query parameters. Slice values are sent as repeated
// key=value pairs.
type Query map[string]any

func BuildURL(baseURL string, path string, query Query) string {
	target := strings.TrimRight(baseURL, "/") + path
	if len(query) == 0 {
		return target
	}

	values := url.Values{}
	for key, value := range query {
		for _, item := range queryValues(value) {
			values.Add(key, item)
		}
	}
	encoded := values.Encode()
	if encoded == "" {
		return target
	}
	return target + "?" + encoded
}

func queryValues(value any) []string {
	switch typed := value.(type) {
	case nil:
		return nil
	case string:
		return []string{typed}
	case []string:
		return typed
	case fmt.Stringer:
		return []string{typed.String()}
	}

	reflected := reflect.ValueOf(value)
	if reflected.Kind() == reflect.Slice || reflected.Kind() == reflect.Array {
		items := make([]string, 0, reflected.Len())
		for index := 0; index < reflected.Len(); index++ {
			items = append(items, fmt.Sprint(reflected.Index(index).Interface()))
		}
		return items
	}
	return []string{fmt.Sprint(value)}
}
