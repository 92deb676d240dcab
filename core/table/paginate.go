package table

// PageCount returns ceil(total/pageSize), never less than 1.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	n := total / pageSize
	if total%pageSize != 0 {
		n++
	}
	return n
}

// Paginate returns the pageIndex-th slice of records and the page count.
// It does not clamp: an out of range pageIndex yields an empty slice.
// A non-positive pageSize puts every record on a single page.
func Paginate[T any](records []T, pageIndex, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		if pageIndex != 0 {
			return []T{}, 1
		}
		return records[:len(records):len(records)], 1
	}
	pageCount := PageCount(len(records), pageSize)
	if pageIndex < 0 || pageIndex >= pageCount || len(records) == 0 {
		return []T{}, pageCount
	}
	start := pageIndex * pageSize
	end := len(records)
	if pageSize < end-start {
		end = start + pageSize
	}
	return records[start:end:end], pageCount
}
