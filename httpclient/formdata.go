// httpclient/formdata.go
package httpclient

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
)

// FormFromMap flattens a nested map into form values using the bracket notation PHP
// decodes into arrays:
//
//	{"combination": {"12": 34}, "status": "A"} -> combination[12]=34&status=A
//	{"usergroup_ids": [1, 2]}                  -> usergroup_ids[0]=1&usergroup_ids[1]=2
//
// Nil values are skipped.
func FormFromMap(data map[string]any) url.Values {
	values := url.Values{}
	for _, key := range sortedKeys(data) {
		flatten(values, key, data[key])
	}
	return values
}

func flatten(values url.Values, prefix string, v any) {
	if v == nil {
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		keys := rv.MapKeys()
		names := make([]string, len(keys))
		byName := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			names[i] = fmt.Sprint(k.Interface())
			byName[names[i]] = rv.MapIndex(k)
		}
		sort.Strings(names)
		for _, name := range names {
			flatten(values, prefix+"["+name+"]", byName[name].Interface())
		}
	case reflect.Slice, reflect.Array:
		if b, ok := v.([]byte); ok {
			values.Add(prefix, string(b))
			return
		}
		for i := 0; i < rv.Len(); i++ {
			flatten(values, fmt.Sprintf("%s[%d]", prefix, i), rv.Index(i).Interface())
		}
	case reflect.Bool:
		if rv.Bool() {
			values.Add(prefix, "1")
		} else {
			values.Add(prefix, "0")
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return
		}
		flatten(values, prefix, rv.Elem().Interface())
	default:
		values.Add(prefix, fmt.Sprint(v))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
