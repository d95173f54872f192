package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList — массив тегов, хранится как JSON в текстовой колонке.
// Порядок элементов сохраняется.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		if v == "" {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	case []byte:
		if len(v) == 0 {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("unsupported tags column type %T", src)
	}
}
