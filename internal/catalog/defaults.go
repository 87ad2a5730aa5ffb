package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-dentlab/internal/pricing"
)

func irr(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// DefaultPriceList is the lab's standard price list in IRR, loaded into an empty catalog.
var DefaultPriceList = []pricing.Entry{
	{Category: "Zirconia Implant", UnitPrice: irr(1900000)},
	{Category: "Zirconia Crown", UnitPrice: irr(1750000)},
	{Category: "Laminate (Emax)", UnitPrice: irr(3800000)},
	{Category: "Glass Ceramic (Crown & Laminate)", UnitPrice: irr(3500000)},
	{Category: "Inlay / Onlay / 2-unit Crown (Zirconia)", UnitPrice: irr(2700000)},
	{Category: "Inlay / Onlay / 2-unit Crown (Emax)", UnitPrice: irr(3800000)},
	{Category: "PFM Bridge", UnitPrice: irr(1750000)},
	{Category: "PFM Crown", UnitPrice: irr(1450000)},
	{Category: "Ni.Cr Bridge", UnitPrice: irr(700000)},
	{Category: "NPG Bridge", UnitPrice: irr(700000)},
	{Category: "Full Zirconia Crown (Single Unit)", UnitPrice: irr(1100000)},
	{Category: "ZIR Bridge", UnitPrice: irr(800000)},
	{Category: "Full Zirconia Crown (Multi-unit Anterior)", UnitPrice: irr(1700000)},
	{Category: "Full Zirconia Crown (Multi-unit Posterior)", UnitPrice: irr(1500000)},
	{Category: "PMMA", UnitPrice: irr(500000)},
	{Category: "Resin", UnitPrice: irr(180000)},
	{Category: "Full Arch Cast Framework", UnitPrice: irr(700000)},
	{Category: "Mock-up", UnitPrice: irr(1500000)},
	{Category: "Partial Cast Framework", UnitPrice: irr(700000)},
	{Category: "Full Arch Cast Framework (Zirconia)", UnitPrice: irr(900000)},
	{Category: "Gingival Mask", UnitPrice: irr(1500000)},
	{Category: "Base & Wax", UnitPrice: irr(700000)},
	{Category: "Metal-Ceramic Crown & Bridge (Full Arch)", UnitPrice: irr(1100000)},
	{Category: "Metal-Ceramic Crown & Bridge (Partial Arch)", UnitPrice: irr(1300000)},
	{Category: "Metal-Ceramic Crown & Bridge (14 Units)", UnitPrice: irr(1800000)},
	{Category: "European Company Abutment", UnitPrice: irr(1500000)},
	{Category: "European Company Abutment (Full Arch)", UnitPrice: irr(850000)},
}
