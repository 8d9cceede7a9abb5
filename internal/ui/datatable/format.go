package datatable

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/swimmeet/internal/ui"
)

// lookupKey reads key from item. It understands maps with string keys and
// structs (exported field name, then json tag, then a case-insensitive
// field name match). Pointers are followed; a nil pointer yields nothing.
func lookupKey(item any, key string) (any, bool) {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true

	case reflect.Struct:
		f, ok := structField(v.Type(), key)
		if !ok {
			return nil, false
		}
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil || !fv.CanInterface() {
			return nil, false
		}
		return fv.Interface(), true
	}
	return nil, false
}

func structField(t reflect.Type, key string) (reflect.StructField, bool) {
	if f, ok := t.FieldByName(key); ok && f.IsExported() {
		return f, true
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == key {
			return f, true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.IsExported() && strings.EqualFold(f.Name, key) {
			return f, true
		}
	}
	return reflect.StructField{}, false
}

// FormatValue turns a plain key-lookup result into display text. Null
// database values, nil pointers and zero times become the empty string.
func FormatValue(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case pgtype.Text:
		if !val.Valid {
			return ""
		}
		return val.String
	case pgtype.Date:
		if !val.Valid {
			return ""
		}
		return val.Time.Format("2006/01/02")
	case pgtype.Timestamptz:
		if !val.Valid {
			return ""
		}
		return val.Time.Format("2006/01/02 15:04")
	case pgtype.Bool:
		if !val.Valid {
			return ""
		}
		return yesNo(val.Bool)
	case pgtype.Int4:
		if !val.Valid {
			return ""
		}
		return strconv.FormatInt(int64(val.Int32), 10)
	case pgtype.Numeric:
		if !val.Valid {
			return ""
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return ""
		}
		if f.Float64 == float64(int64(f.Float64)) {
			return fmt.Sprintf("%.0f", f.Float64)
		}
		return fmt.Sprintf("%.2f", f.Float64)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006/01/02")
	case bool:
		return yesNo(val)
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return val.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return FormatValue(rv.Elem().Interface())
	}
	return fmt.Sprintf("%v", v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// keyContent resolves a plain key lookup into a component. Values that
// already are components render as themselves.
func keyContent(item any, key string) templ.Component {
	v, ok := lookupKey(item, key)
	if !ok {
		return ui.Text("")
	}
	if c, ok := v.(templ.Component); ok && c != nil {
		return c
	}
	return ui.Text(FormatValue(v))
}
