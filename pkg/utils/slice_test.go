package utils_test

import (
	"strconv"
	"testing"

	"github.com/pantrylab/cookbookd/pkg/utils"
	"github.com/pantrylab/cookbookd/pkg/utils/cmp"
)

func TestSliceUtils(t *testing.T) {
	t.Run("Map maps slice to another", func(t *testing.T) {
		input := []int{3, 5, 7, 11}
		called := 0
		mapper := func(v int) string {
			called += 1
			return strconv.Itoa(v * 2)
		}
		output := utils.Map(input, mapper)

		if called != len(input) {
			t.Errorf("mapper has not been called enough. (actual, expected) = (%d, %d)", called, len(input))
		}

		expected := []string{"6", "10", "14", "22"}
		if !cmp.SliceEq(output, expected) {
			t.Errorf("mapped result is wrong. (actual, expected) = (%v, %v)", output, expected)
		}
	})

	t.Run("Map over empty slice is empty, not nil", func(t *testing.T) {
		output := utils.Map([]int{}, strconv.Itoa)
		if output == nil {
			t.Fatal("mapped result is nil")
		}
		if len(output) != 0 {
			t.Errorf("mapped result is not empty. actual = %v", output)
		}
	})

	t.Run("ToMap converts slice to map", func(t *testing.T) {
		type T struct {
			key   string
			value int
		}
		values := []T{
			{key: "a", value: 3},
			{key: "b", value: 99},
			{key: "c", value: 100},
		}

		result := utils.ToMap(values, func(v T) string { return v.key })

		if len(result) != len(values) {
			t.Fatalf("map size is wrong. (actual, expected) = (%d, %d)", len(result), len(values))
		}
		for _, v := range values {
			if result[v.key] != v {
				t.Errorf(
					"entry for %s is wrong. (actual, expected) = (%v, %v)",
					v.key, result[v.key], v,
				)
			}
		}
	})

	t.Run("ToMultiMap collects values sharing a key", func(t *testing.T) {
		type T struct {
			key   string
			value int
		}
		values := []T{
			{key: "odd", value: 3},
			{key: "even", value: 4},
			{key: "odd", value: 5},
			{key: "odd", value: 7},
		}

		result := utils.ToMultiMap(values, func(v T) (string, int) { return v.key, v.value })

		if len(result) != 2 {
			t.Fatalf("map size is wrong. (actual, expected) = (%d, %d)", len(result), 2)
		}
		if !cmp.SliceEq(result["odd"], []int{3, 5, 7}) {
			t.Errorf("entry for odd is wrong. actual = %v", result["odd"])
		}
		if !cmp.SliceEq(result["even"], []int{4}) {
			t.Errorf("entry for even is wrong. actual = %v", result["even"])
		}
	})

	t.Run("KeysOf and ValuesOf make slices from a map", func(t *testing.T) {
		input := map[int]string{
			1: "foo",
			2: "bar",
			3: "baz",
		}
		{
			actual := utils.ValuesOf(input)
			expected := []string{"foo", "bar", "baz"}

			if !cmp.SliceContentEq(actual, expected) {
				t.Errorf(
					"slice elements are wrong:\nactual   = %+v\nexpected = %+v",
					actual, expected,
				)
			}
		}
		{
			actual := utils.KeysOf(input)
			expected := []int{1, 2, 3}
			if !cmp.SliceContentEq(actual, expected) {
				t.Errorf(
					"slice elements are wrong:\nactual   = %+v\nexpected = %+v",
					actual, expected,
				)
			}
		}
	})
}
