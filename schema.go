package specdex

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/specdex/specdex/internal/domain/spec"
)

const tagKey = "specdex"

// schemaMeta holds parsed struct tag metadata, cached per Catalog.
type schemaMeta struct {
	typ reflect.Type // struct type for reconstruction

	idIdx    int
	titleIdx int // -1 if not present

	specFields []specMapping
}

// specMapping links one struct field to a specification leaf.
type specMapping struct {
	structIdx int
	category  string
	specKey   string
	unit      string
}

// parseSchema reflects on T and extracts specdex struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("specdex: type %s is not a struct", t)
	}

	meta := &schemaMeta{typ: t, idIdx: -1, titleIdx: -1}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		if err := applyTag(meta, i, f.Name, tag); err != nil {
			return nil, err
		}
	}

	if meta.idIdx == -1 {
		return nil, fmt.Errorf("specdex: no field with `specdex:\"id\"` tag in %s", t)
	}
	return meta, nil
}

// applyTag processes a single struct field's specdex tag.
func applyTag(meta *schemaMeta, idx int, fieldName, tag string) error {
	name, modifier, _ := strings.Cut(tag, ",")

	switch name {
	case "id":
		if meta.idIdx != -1 {
			return fmt.Errorf("specdex: duplicate id tag on field %s", fieldName)
		}
		meta.idIdx = idx
		return nil
	case "title":
		if meta.titleIdx != -1 {
			return fmt.Errorf("specdex: duplicate title tag on field %s", fieldName)
		}
		meta.titleIdx = idx
		return nil
	}

	m := specMapping{structIdx: idx}
	if cat, key, ok := spec.SplitKey(name); ok {
		m.category, m.specKey = cat, key
	} else {
		m.category, m.specKey = "general", name
	}

	switch {
	case modifier == "":
	case strings.HasPrefix(modifier, "unit="):
		m.unit = strings.TrimPrefix(modifier, "unit=")
	default:
		return fmt.Errorf("specdex: unknown modifier %q on field %s", modifier, fieldName)
	}

	meta.specFields = append(meta.specFields, m)
	return nil
}

// toRecord converts a typed struct to a Record using schema metadata.
func (m *schemaMeta) toRecord(item any) Record {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	rec := Record{ID: fmt.Sprint(v.Field(m.idIdx).Interface())}
	if m.titleIdx != -1 {
		rec.Title = fmt.Sprint(v.Field(m.titleIdx).Interface())
	}

	if len(m.specFields) == 0 {
		return rec
	}
	rec.Specifications = make(map[string]map[string]SpecValue)
	for _, sf := range m.specFields {
		raw := fieldToString(v.Field(sf.structIdx))
		if raw == "" {
			continue
		}
		if rec.Specifications[sf.category] == nil {
			rec.Specifications[sf.category] = make(map[string]SpecValue)
		}
		rec.Specifications[sf.category][sf.specKey] = SpecValue{Value: raw, Unit: sf.unit}
	}
	return rec
}

// fromRecord converts a Record back to a typed struct using schema metadata.
func (m *schemaMeta) fromRecord(rec Record) any {
	v := reflect.New(m.typ).Elem()

	v.Field(m.idIdx).SetString(rec.ID)
	if m.titleIdx != -1 {
		v.Field(m.titleIdx).SetString(rec.Title)
	}
	for _, sf := range m.specFields {
		leaves, ok := rec.Specifications[sf.category]
		if !ok {
			continue
		}
		sv, ok := leaves[sf.specKey]
		if !ok {
			continue
		}
		setFieldFromSpec(v.Field(sf.structIdx), sv)
	}
	return v.Interface()
}

func fieldToString(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Float32, reflect.Float64:
		if v.Float() == 0 {
			return ""
		}
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Int() == 0 {
			return ""
		}
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Uint() == 0 {
			return ""
		}
		return strconv.FormatUint(v.Uint(), 10)
	default:
		return ""
	}
}

func setFieldFromSpec(v reflect.Value, sv SpecValue) {
	switch v.Kind() {
	case reflect.String:
		v.SetString(spec.Value(sv).DisplayValue())
	case reflect.Float32, reflect.Float64:
		if n, ok := spec.ParseNumeric(spec.Value(sv)); ok {
			v.SetFloat(n.Value)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := spec.ParseNumeric(spec.Value(sv)); ok {
			v.SetInt(int64(n.Value))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, ok := spec.ParseNumeric(spec.Value(sv)); ok && n.Value >= 0 {
			v.SetUint(uint64(n.Value))
		}
	}
}
