package shared

import (
	"context"
	"encoding/json"
	"fmt"
	"hostmaster/shared/cache"
	"hostmaster/shared/constant"
	"hostmaster/shared/dto"
	"hostmaster/shared/failure"
	"hostmaster/shared/timezone"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

// ConvertStringToInt64 returns nil when the value is empty or not a number.
func ConvertStringToInt64(value string) *int64 {
	if value == "" {
		return nil
	}

	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to int64")

		return nil
	}

	return &intValue
}

// ParseID reads a positive integer identifier from a path parameter.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, failure.BadRequestFromString(fmt.Sprintf("invalid id %q", value)) //nolint:wrapcheck
	}

	return id, nil
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the fields of a struct into a map of updated fields.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

// FilterByID matches a single row by its identifier column.
func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.And(dto.Eq(table, fieldID, id))
}

// BuildCacheKey joins the prefix and parts with colons, e.g. "room:get:12".
func BuildCacheKey(prefix string, parts ...any) string {
	keys := []string{prefix}

	for _, part := range parts {
		keys = append(keys, fmt.Sprintf("%v", part))
	}

	return strings.Join(keys, ":")
}

// BuildCacheKeyWithQuery appends the serialized query params and filters to the prefix.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	encodedArgs, err := json.Marshal(args)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to encode cache key arguments")
	}

	return BuildCacheKey(prefix, params.Page, params.Limit, params.SortBy, params.SortDir, where, string(encodedArgs))
}

// InvalidateCaches removes every key that starts with prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
