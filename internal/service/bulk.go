package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pageza/harvestplan/backend/internal/apperr"
	"github.com/pageza/harvestplan/backend/internal/types"
)

// ParseBulkLine reads one pasted inventory line of the form
//
//	name[, quantity[ unit]][; shelf life days]
//
// e.g. "kale, 1 bunch; 4" or "carrots, 2 lb" or "basil".
func ParseBulkLine(line string) (types.InventoryItemRequest, error) {
	var req types.InventoryItemRequest

	body, life, hasLife := strings.Cut(line, ";")
	name, qty, hasQty := strings.Cut(body, ",")

	req.Name = strings.TrimSpace(name)
	if req.Name == "" {
		return req, fmt.Errorf("%w: missing item name", apperr.ErrInvalidInput)
	}

	if hasQty {
		fields := strings.Fields(qty)
		if len(fields) > 0 {
			q, err := parseQuantity(fields[0])
			if err != nil {
				return req, err
			}
			req.Quantity = &q
			req.Unit = strings.Join(fields[1:], " ")
		}
	}

	if hasLife {
		raw := strings.TrimSpace(strings.ToLower(life))
		raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(raw, "days"), "day"), "d"))
		if raw != "" {
			days, err := strconv.Atoi(raw)
			if err != nil || days < 0 {
				return req, fmt.Errorf("%w: shelf life %q must be a whole number of days", apperr.ErrInvalidInput, strings.TrimSpace(life))
			}
			req.EstimatedShelfLifeDays = &days
		}
	}
	return req, nil
}

// parseQuantity accepts decimals and simple fractions such as "1/2".
func parseQuantity(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 == nil && err2 == nil && d != 0 && n >= 0 {
			return n / d, nil
		}
	} else if q, err := strconv.ParseFloat(s, 64); err == nil && q >= 0 {
		return q, nil
	}
	return 0, fmt.Errorf("%w: quantity %q is not a number", apperr.ErrInvalidInput, s)
}
