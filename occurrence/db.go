package occurrence

import (
	"context"
	"database/sql"
	"fmt"
)

// FromDB reads observations from a training-data table with columns
// lon, lat and type. The upstream pipeline materializes this table
// (DuckDB in the standard setup); any database/sql source with the
// same shape works.
func FromDB(ctx context.Context, db *sql.DB, table string) ([]Observation, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT lon, lat, "type" FROM %q`, table))
	if err != nil {
		return nil, fmt.Errorf("querying training data from %s: %w", table, err)
	}
	defer rows.Close()

	var obs []Observation
	for rows.Next() {
		var o Observation
		var cat string
		if err := rows.Scan(&o.Lon, &o.Lat, &cat); err != nil {
			return nil, fmt.Errorf("scanning training data row: %w", err)
		}
		o.Category = Category(cat)
		if !o.Category.Valid() {
			return nil, fmt.Errorf("training data row has unknown type %q", cat)
		}
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading training data: %w", err)
	}
	return obs, nil
}
