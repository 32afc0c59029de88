package models

import (
	"fmt"
	"strings"
)

// GoalUnit is the unit symbol a goal is measured in
type GoalUnit string

const (
	// Quantities
	UnitPieces    GoalUnit = "шт"
	UnitPacks     GoalUnit = "уп"
	UnitKilograms GoalUnit = "кг"
	UnitLiters    GoalUnit = "л"
	UnitMeters    GoalUnit = "м"

	// Money
	UnitEuro   GoalUnit = "€"
	UnitDollar GoalUnit = "$"
	UnitRuble  GoalUnit = "₽"
	UnitTenge  GoalUnit = "₸"

	// Time
	UnitDays   GoalUnit = "дн"
	UnitWeeks  GoalUnit = "нед"
	UnitMonths GoalUnit = "мес"
	UnitHours  GoalUnit = "ч"
)

// AllUnits lists every unit in display order
var AllUnits = []GoalUnit{
	UnitPieces, UnitPacks, UnitKilograms, UnitLiters, UnitMeters,
	UnitEuro, UnitDollar, UnitRuble, UnitTenge,
	UnitDays, UnitWeeks, UnitMonths, UnitHours,
}

var unitAliases = map[string]GoalUnit{
	"pieces": UnitPieces, "pcs": UnitPieces,
	"packs": UnitPacks,
	"kg":    UnitKilograms, "kilograms": UnitKilograms,
	"liters": UnitLiters, "l": UnitLiters,
	"meters": UnitMeters, "m": UnitMeters,
	"eur": UnitEuro, "euro": UnitEuro,
	"usd": UnitDollar, "dollar": UnitDollar,
	"rub": UnitRuble, "ruble": UnitRuble,
	"kzt": UnitTenge, "tenge": UnitTenge,
	"days": UnitDays, "d": UnitDays,
	"weeks": UnitWeeks, "w": UnitWeeks,
	"months": UnitMonths,
	"hours":  UnitHours, "h": UnitHours,
}

// Valid reports whether u is one of the known unit symbols
func (u GoalUnit) Valid() bool {
	for _, known := range AllUnits {
		if u == known {
			return true
		}
	}
	return false
}

// ParseUnit accepts a unit symbol or an English alias
func ParseUnit(s string) (GoalUnit, error) {
	s = strings.TrimSpace(s)
	if u := GoalUnit(s); u.Valid() {
		return u, nil
	}
	if u, ok := unitAliases[strings.ToLower(s)]; ok {
		return u, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}
