package utils

// map each element in sli.
//
// args:
//     - sli : slice of `T`s
//     - mapper : mapping function from T to R
// return:
//     slice of `R`s.
//     each element indexed `N` is given with `mapper(sli[N])` .
//
// The result is never nil, even for empty sli.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	ret := make([]R, len(sli))
	for nth, v := range sli {
		ret[nth] = mapper(v)
	}
	return ret
}

// convert slice to map.
//
// If keys given with getkey collides, a value coming latter takes over previous.
//
// args:
//     - sli: source slice
//     - getkey: get key from an element of sli
func ToMap[T any, K comparable](sli []T, getkey func(v T) K) map[K]T {
	m := map[K]T{}

	for _, v := range sli {
		m[getkey(v)] = v
	}

	return m
}

// convert slice to multimap.
//
// Each element is split into a (key, value) pair with `pair`,
// and values sharing a key are collected into one slice.
func ToMultiMap[T any, K comparable, R any](sli []T, pair func(v T) (K, R)) map[K][]R {
	m := map[K][]R{}
	for _, i := range sli {
		k, v := pair(i)
		m[k] = append(m[k], v)
	}
	return m
}

// flatten map to slice of its keys.
func KeysOf[T any, K comparable](m map[K]T) []K {
	sli := make([]K, 0, len(m))
	for k := range m {
		sli = append(sli, k)
	}
	return sli
}

// flatten map to slice of its values.
func ValuesOf[T any, K comparable](m map[K]T) []T {
	sli := make([]T, 0, len(m))
	for _, value := range m {
		sli = append(sli, value)
	}
	return sli
}
