package inventory

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func BenchmarkProductFilterQuery(b *testing.B) {
	filter := ProductFilter{
		Search:     "shirt",
		Categories: []string{"Tops", "Sale"},
		MinPrice:   ptr(10.0),
		MaxPrice:   ptr(20.0),
		SortBy:     "price",
		SortDesc:   true,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bson.Marshal(filter.Query()); err != nil {
			b.Fatal(err)
		}
		_ = filter.FindOptions()
	}
}

func BenchmarkParseProductQuery(b *testing.B) {
	query := ProductQuery{Search: "shirt", Categories: "Tops,Sale,Outlet", MinPrice: "10", MaxPrice: "20"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseProductQuery(query); err != nil {
			b.Fatal(err)
		}
	}
}
