package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

func bind(r *http.Request, method string, req any) error {
	switch method {
	case http.MethodGet:
		return bindQuery(r, req)
	case http.MethodPost:
		return bindJSON(r, req)
	default:
		return fmt.Errorf("unsupported method %s", method)
	}
}

func bindJSON(r *http.Request, req any) error {
	if r.Body == nil {
		return nil
	}

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		// An empty body is fine for requests without parameters.
		if err.Error() == "EOF" {
			return nil
		}
		return err
	}

	return nil
}

// bindQuery fills req from URL query parameters. Parameter names come
// from the json tag of each field. Only string, int, and bool fields
// are supported, which covers every GET request in this service.
func bindQuery(r *http.Request, req any) error {
	values := r.URL.Query()

	structValue := reflect.ValueOf(req).Elem()
	structType := structValue.Type()
	for i := 0; i < structType.NumField(); i++ {
		name, _, _ := strings.Cut(structType.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		raw := values.Get(name)
		if raw == "" {
			continue
		}

		field := structValue.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value of %s: %w", name, err)
			}
			field.SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("invalid value of %s: %w", name, err)
			}
			field.SetBool(b)
		default:
			return fmt.Errorf("unsupported type of %s", name)
		}
	}

	return nil
}
