// Package models содержит доменные сущности pokedex-сервиса.
package models

import (
	"strings"
	"time"
)

// Pokemon - запись каталога.
// Важно:
//   - ID - ObjectID MongoDB в hex. Назначается хранилищем, не меняется;
//   - No - номер в каталоге, уникален;
//   - Name - уникален, хранится нормализованным (см. NormalizeName).
type Pokemon struct {
	ID        string
	No        int
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PokemonPatch - частичное обновление; nil означает «поле не передано».
type PokemonPatch struct {
	No   *int
	Name *string
}

// Empty сообщает, что патч не содержит ни одного поля.
func (p PokemonPatch) Empty() bool {
	return p.No == nil && p.Name == nil
}

// Apply возвращает копию записи с наложенными полями патча.
func (p PokemonPatch) Apply(rec Pokemon) Pokemon {
	if p.No != nil {
		rec.No = *p.No
	}

	if p.Name != nil {
		rec.Name = *p.Name
	}

	return rec
}

// ListParams - параметры выдачи limit/offset.
// Limit == 0 означает «взять значение по умолчанию из конфигурации».
type ListParams struct {
	Limit  int
	Offset int
}

// NormalizeName приводит имя к форме хранения: trim + lower case.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
