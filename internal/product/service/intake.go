package service

import (
	"strings"

	"github.com/smallbiznis/storefront/internal/product/domain"
)

type intake struct {
	name          string
	price         int64
	imageURL      string
	images        []string
	description   *string
	categoryID    int64
	subcategoryID *int64
	brandID       *int64
	colorID       *int64
	gender        *domain.Gender
	premium       bool
	widthCm       *float64
	heightCm      *float64
	depthCm       *float64
	sizeType      domain.SizeType
	rawGroups     any
}

type sizeGroup struct {
	price   int64
	sizeIDs []int64
}

// parseIntake coerces the request body and applies the checks that need no
// storage: name, then the flat price for unsized products, then category.
func parseIntake(req domain.CreateRequest, placeholder string) (*intake, error) {
	in := &intake{
		name:          strings.TrimSpace(setText(req["name"])),
		brandID:       optionalID(req["brandId"]),
		colorID:       optionalID(req["colorId"]),
		subcategoryID: optionalID(req["subcategoryId"]),
		gender:        parseGender(req["gender"]),
		premium:       truthy(req["premium"]),
		widthCm:       positiveOrNil(req["widthCm"]),
		heightCm:      positiveOrNil(req["heightCm"]),
		depthCm:       positiveOrNil(req["depthCm"]),
		sizeType:      parseSizeType(req["sizeType"]),
		rawGroups:     req["sizeGroups"],
	}

	in.imageURL = strings.TrimSpace(toText(req["imageUrl"]))
	if in.imageURL == "" {
		in.imageURL = placeholder
	}
	in.images = parseGallery(req["images"], in.imageURL)

	if description := setText(req["description"]); description != "" {
		in.description = &description
	}

	if in.name == "" {
		return nil, domain.ErrNameRequired
	}

	if in.sizeType == domain.SizeTypeNone {
		price, ok := parsePrice(req["price"])
		if !ok {
			return nil, domain.ErrInvalidPrice
		}
		in.price = price
	}

	categoryID, ok := toID(req["categoryId"])
	if !ok {
		return nil, domain.ErrCategoryRequired
	}
	in.categoryID = categoryID

	return in, nil
}

func parseGender(v any) *domain.Gender {
	raw, ok := v.(string)
	if !ok {
		return nil
	}
	gender := domain.Gender(strings.ToLower(strings.TrimSpace(raw)))
	switch gender {
	case domain.GenderMen, domain.GenderWomen, domain.GenderUnisex:
		return &gender
	default:
		return nil
	}
}

// parseSizeType falls back to NONE for anything unrecognized.
func parseSizeType(v any) domain.SizeType {
	switch st := domain.SizeType(strings.ToUpper(strings.TrimSpace(toText(v)))); st {
	case domain.SizeTypeShoe, domain.SizeTypeCloth:
		return st
	default:
		return domain.SizeTypeNone
	}
}

func parseGallery(v any, primary string) []string {
	items := toSlice(v)
	images := make([]string, 0, len(items))
	for _, item := range items {
		image := strings.TrimSpace(toText(item))
		if image == "" || image == primary {
			continue
		}
		images = append(images, image)
	}
	return images
}

// normalizeGroups keeps the groups with a valid price and at least one size
// id of the selected taxonomy. The canonical price is the cheapest survivor.
func normalizeGroups(sizeType domain.SizeType, raw any) ([]sizeGroup, int64, error) {
	key := "sizeIds"
	if sizeType == domain.SizeTypeCloth {
		key = "sizeClIds"
	}

	var (
		groups   []sizeGroup
		minPrice int64
	)
	for _, item := range toSlice(raw) {
		group, ok := item.(map[string]any)
		if !ok {
			continue
		}
		price, ok := parsePrice(group["price"])
		if !ok {
			continue
		}
		ids := toIDs(group[key])
		if len(ids) == 0 {
			continue
		}
		groups = append(groups, sizeGroup{price: price, sizeIDs: ids})
		if minPrice == 0 || price < minPrice {
			minPrice = price
		}
	}

	if len(groups) == 0 {
		return nil, 0, domain.ErrSizeGroupRequired
	}
	return groups, minPrice, nil
}
