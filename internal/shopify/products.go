package shopify

import (
	"context"
	"fmt"

	"github.com/gtondello/ShopifyProductSearchApp/internal/core/catalog"
	"github.com/tidwall/gjson"
)

const productsQuery = `query getProducts($first: Int!, $query: String, $sortKey: ProductSortKeys!, $reverse: Boolean) {
  products(first: $first, query: $query, sortKey: $sortKey, reverse: $reverse) {
    edges {
      node {
        id
        title
        descriptionHtml
        productType
        vendor
        totalInventory
        totalVariants
        tags
        images(first: 1) {
          edges {
            node {
              originalSrc
              altText
            }
          }
        }
      }
    }
  }
}`

const collectionsQuery = `query getCollections($first: Int!) {
  collections(first: $first, sortKey: TITLE) {
    edges {
      node {
        id
        title
      }
    }
  }
}`

// CollectionsPageSize is the number of collections requested in one call.
const CollectionsPageSize = 100

var (
	_ catalog.Source           = (*Client)(nil)
	_ catalog.CollectionSource = (*Client)(nil)
)

// Products runs the product search. A nil filter text is sent as a null query.
func (c *Client) Products(ctx context.Context, q catalog.Query) ([]catalog.Record, error) {
	first := q.First
	if first <= 0 {
		first = catalog.PageSize
	}
	sortKey := q.SortKey
	if !sortKey.IsValid() {
		sortKey = catalog.SortTitle
	}

	vars := map[string]any{
		"first":   first,
		"query":   q.Text,
		"sortKey": string(sortKey),
		"reverse": q.Reverse,
	}

	data, err := c.Do(ctx, productsQuery, vars)
	if err != nil {
		return nil, err
	}

	edges := data.Get("products.edges")
	if !edges.Exists() {
		return nil, fmt.Errorf("shopify: response has no products")
	}

	records := make([]catalog.Record, 0, len(edges.Array()))
	for _, edge := range edges.Array() {
		records = append(records, decodeProduct(edge.Get("node")))
	}
	return records, nil
}

func decodeProduct(node gjson.Result) catalog.Record {
	r := catalog.Record{
		ID:              node.Get("id").String(),
		Title:           node.Get("title").String(),
		DescriptionHTML: node.Get("descriptionHtml").String(),
		ProductType:     node.Get("productType").String(),
		Vendor:          node.Get("vendor").String(),
		TotalInventory:  int(node.Get("totalInventory").Int()),
		TotalVariants:   int(node.Get("totalVariants").Int()),
	}
	for _, tag := range node.Get("tags").Array() {
		r.Tags = append(r.Tags, tag.String())
	}
	if image := node.Get("images.edges.0.node"); image.Exists() {
		r.ImageURL = image.Get("originalSrc").String()
		r.ImageAltText = image.Get("altText").String()
	}
	return r
}

// Collections returns the first page of collections sorted by title.
func (c *Client) Collections(ctx context.Context) ([]catalog.Collection, error) {
	data, err := c.Do(ctx, collectionsQuery, map[string]any{"first": CollectionsPageSize})
	if err != nil {
		return nil, err
	}

	var collections []catalog.Collection
	data.Get("collections.edges.#.node").ForEach(func(_, node gjson.Result) bool {
		collections = append(collections, catalog.Collection{
			ID:    node.Get("id").String(),
			Title: node.Get("title").String(),
		})
		return true
	})
	return collections, nil
}
