package dto_test

import (
	"hostmaster/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.Filter
		where  string
		args   map[string]any
	}{
		{
			name:   "equality",
			filter: dto.Eq("reservations", "status", "confirmed"),
			where:  "reservations.status = :status",
			args:   map[string]any{"status": "confirmed"},
		},
		{
			name:   "custom argument name",
			filter: dto.Filter{ArgName: "self_id", Table: "rooms", Field: "id", Value: int64(4), Operator: dto.FilterOperatorNotEq},
			where:  "rooms.id != :self_id",
			args:   map[string]any{"self_id": int64(4)},
		},
		{
			name:   "case insensitive like",
			filter: dto.Filter{Table: "cities", Field: "name", Value: "lis", Operator: dto.FilterOperatorLike},
			where:  "LOWER(cities.name) LIKE LOWER(:name)",
			args:   map[string]any{"name": "%lis%"},
		},
		{
			name:   "in expands the slice",
			filter: dto.Filter{Table: "reservations", Field: "id", Value: []int64{3, 9}, Operator: dto.FilterOperatorIn},
			where:  "reservations.id IN (:id_0, :id_1)",
			args:   map[string]any{"id_0": int64(3), "id_1": int64(9)},
		},
		{
			name:   "in with an empty slice matches nothing",
			filter: dto.Filter{Field: "id", Value: []int64{}, Operator: dto.FilterOperatorIn},
			where:  "FALSE",
			args:   map[string]any{},
		},
		{
			name:   "in with a scalar binds it",
			filter: dto.Filter{Field: "id", Value: int64(5), Operator: dto.FilterOperatorIn},
			where:  "id = :id",
			args:   map[string]any{"id": int64(5)},
		},
		{
			name:   "plain query keeps its arguments",
			filter: dto.Filter{Value: "start_date < :end", Operator: dto.FilterPlainQuery, Args: map[string]any{"end": "2024-05-04"}},
			where:  "(start_date < :end)",
			args:   map[string]any{"end": "2024-05-04"},
		},
		{
			name:   "null check",
			filter: dto.Filter{Table: "users", Field: "email", Operator: dto.FilterIsNotNull},
			where:  "users.email IS NOT NULL",
			args:   map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.And(
		dto.Eq("rooms", "accommodation_id", int64(2)),
		dto.FilterGroup{},
		dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []any{
				dto.Filter{ArgName: "open", Table: "rooms", Field: "is_available", Value: true, Operator: dto.FilterOperatorEq},
				dto.Filter{Table: "rooms", Field: "type_id", Value: int64(1), Operator: dto.FilterOperatorEq},
			},
		},
	)

	where, args := group.GetWhereClause()

	assert.Equal(t, "(rooms.accommodation_id = :accommodation_id AND (rooms.is_available = :open OR rooms.type_id = :type_id))", where)
	assert.Equal(t, map[string]any{"accommodation_id": int64(2), "open": true, "type_id": int64(1)}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
