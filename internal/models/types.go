package models

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// IDList stores as a native bigint[] on PostgreSQL; elsewhere (sqlite in
// tests) it falls back to the pq array literal in a text column.
type IDList pq.Int64Array

func (IDList) GormDataType() string {
	return "text"
}

func (IDList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "bigint[]"
	}
	return "text"
}

func (l IDList) Value() (driver.Value, error) {
	return pq.Int64Array(l).Value()
}

func (l *IDList) Scan(src interface{}) error {
	return (*pq.Int64Array)(l).Scan(src)
}

// StringList is the text[] counterpart of IDList.
type StringList pq.StringArray

func (StringList) GormDataType() string {
	return "text"
}

func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (l StringList) Value() (driver.Value, error) {
	return pq.StringArray(l).Value()
}

func (l *StringList) Scan(src interface{}) error {
	return (*pq.StringArray)(l).Scan(src)
}
