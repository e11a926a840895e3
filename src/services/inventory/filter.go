package inventory

import (
	"regexp"
	"strconv"
	"strings"

	"go-shop-api/src/services/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sortableFields maps accepted sortBy values to stored field names.
var sortableFields = map[string]string{
	"_id":         "_id",
	"id":          "_id",
	"name":        "name",
	"category":    "category",
	"price":       "price",
	"quantity":    "quantity",
	"description": "description",
	"image":       "image",
}

// ProductQuery is the raw list query as received over HTTP.
type ProductQuery struct {
	Search     string `query:"search"`
	Categories string `query:"categories"`
	MinPrice   string `query:"minPrice"`
	MaxPrice   string `query:"maxPrice"`
	SortBy     string `query:"sortBy"`
	SortOrder  string `query:"sortOrder"`
}

// ProductFilter is the typed form of a product listing. Zero values impose no constraint.
type ProductFilter struct {
	Search     string
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
	SortDesc   bool
}

func ParseProductQuery(q ProductQuery) (ProductFilter, error) {
	filter := ProductFilter{
		Search:   strings.TrimSpace(q.Search),
		SortDesc: strings.EqualFold(q.SortOrder, "desc"),
	}

	if q.Categories != "" {
		for _, category := range strings.Split(q.Categories, ",") {
			if category = strings.TrimSpace(category); category != "" {
				filter.Categories = append(filter.Categories, category)
			}
		}
	}

	var err error
	if filter.MinPrice, err = parsePrice("minPrice", q.MinPrice); err != nil {
		return ProductFilter{}, err
	}
	if filter.MaxPrice, err = parsePrice("maxPrice", q.MaxPrice); err != nil {
		return ProductFilter{}, err
	}

	if field, ok := sortableFields[q.SortBy]; ok {
		filter.SortBy = field
	}
	return filter, nil
}

func parsePrice(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apperr.Invalid("%s must be a number", name)
	}
	return &value, nil
}

// Query builds the conjunctive bson filter.
func (f ProductFilter) Query() bson.M {
	query := bson.M{}

	if f.Search != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
	}

	if len(f.Categories) > 0 {
		query["category"] = bson.M{"$in": f.Categories}
	}

	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}

	return query
}

// FindOptions leaves sorting unset when no sort was requested, keeping natural order.
func (f ProductFilter) FindOptions() *options.FindOptions {
	opts := options.Find()
	if f.SortBy == "" {
		return opts
	}
	order := 1
	if f.SortDesc {
		order = -1
	}
	return opts.SetSort(bson.D{{Key: f.SortBy, Value: order}})
}
