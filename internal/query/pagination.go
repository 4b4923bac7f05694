/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package query

import (
	"math"

	sq "github.com/Masterminds/squirrel"
)

// Pagination is a 1-based page window.
type Pagination struct {
	Number int
	Size   int
}

func NewPagination(number, size int) (Pagination, error) {
	if number < 1 {
		return Pagination{}, ErrInvalidPageNumber
	}
	if size < 0 {
		return Pagination{}, ErrInvalidPageSize
	}
	// The row offset must fit in a signed 64-bit OFFSET.
	if size > 0 && int64(number-1) > math.MaxInt64/int64(size) {
		return Pagination{}, ErrPageOutOfRange
	}
	return Pagination{Number: number, Size: size}, nil
}

func (p Pagination) Limit() uint64 {
	return uint64(p.Size)
}

func (p Pagination) Offset() uint64 {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	return uint64(p.Number-1) * uint64(p.Size)
}

// TotalPages never reports fewer than one page. A zero page size always
// yields a single page.
func (p Pagination) TotalPages(total int) int {
	if p.Size <= 0 {
		return 1
	}
	pages := (total + p.Size - 1) / p.Size
	if pages < 1 {
		return 1
	}
	return pages
}

func (p Pagination) Apply(b sq.SelectBuilder) sq.SelectBuilder {
	return b.Limit(p.Limit()).Offset(p.Offset())
}
