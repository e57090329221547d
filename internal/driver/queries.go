package driver

import "fmt"

const (
	CreateMenuItemLabelIndexQuery = "CREATE INDEX ON :MenuItem;"

	// SearchMenuItemsQuery returns the catalog columns under the keys the normalizer reads,
	// nearest first.
	SearchMenuItemsQuery = `
		CALL vector_search.search($index_name, $limit, $embedding)
		YIELD node, similarity
		RETURN node.category AS Category,
			node.name AS Name,
			node.description AS Description,
			node.price AS Price,
			node.old_price AS Old_Price,
			node.image_url AS Image_URL,
			node.source_file AS source_file,
			similarity
		ORDER BY similarity DESC
	`
)

func CreateVectorIndexQuery(idx VectorIndex) string {
	return fmt.Sprintf(
		`CREATE VECTOR INDEX %s ON :MenuItem(embedding) WITH CONFIG {"dimension": %d, "capacity": %d, "metric": "cos"};`,
		idx.Name, idx.Dimension, idx.Capacity,
	)
}
