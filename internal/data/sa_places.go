// Package data holds the built-in lookup tables the pipeline loads at
// startup: the place gazetteer, the default service keyword categories, and
// the default blacklist. Configuration may extend each table but the
// built-ins are always available.
package data

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PlaceInfo contains metadata about a gazetteer entry.
type PlaceInfo struct {
	Canonical string // Normalized slug form
	Province  string // Province code
}

// saPlaces maps normalized place names to their info.
// Curated list of South African metros, cities, and well-known suburbs that
// show up in neighbourhood group chats.
var saPlaces = map[string]PlaceInfo{
	// Gauteng
	"johannesburg":   {Canonical: "johannesburg", Province: "GP"},
	"joburg":         {Canonical: "johannesburg", Province: "GP"},
	"jozi":           {Canonical: "johannesburg", Province: "GP"},
	"pretoria":       {Canonical: "pretoria", Province: "GP"},
	"tshwane":        {Canonical: "pretoria", Province: "GP"},
	"sandton":        {Canonical: "sandton", Province: "GP"},
	"randburg":       {Canonical: "randburg", Province: "GP"},
	"roodepoort":     {Canonical: "roodepoort", Province: "GP"},
	"soweto":         {Canonical: "soweto", Province: "GP"},
	"midrand":        {Canonical: "midrand", Province: "GP"},
	"centurion":      {Canonical: "centurion", Province: "GP"},
	"fourways":       {Canonical: "fourways", Province: "GP"},
	"rosebank":       {Canonical: "rosebank", Province: "GP"},
	"bryanston":      {Canonical: "bryanston", Province: "GP"},
	"benoni":         {Canonical: "benoni", Province: "GP"},
	"boksburg":       {Canonical: "boksburg", Province: "GP"},
	"kempton park":   {Canonical: "kempton-park", Province: "GP"},
	"alberton":       {Canonical: "alberton", Province: "GP"},
	"germiston":      {Canonical: "germiston", Province: "GP"},
	"springs":        {Canonical: "springs", Province: "GP"},
	"krugersdorp":    {Canonical: "krugersdorp", Province: "GP"},
	"vereeniging":    {Canonical: "vereeniging", Province: "GP"},
	"vanderbijlpark": {Canonical: "vanderbijlpark", Province: "GP"},

	// Western Cape
	"cape town":       {Canonical: "cape-town", Province: "WC"},
	"kaapstad":        {Canonical: "cape-town", Province: "WC"},
	"stellenbosch":    {Canonical: "stellenbosch", Province: "WC"},
	"paarl":           {Canonical: "paarl", Province: "WC"},
	"somerset west":   {Canonical: "somerset-west", Province: "WC"},
	"bellville":       {Canonical: "bellville", Province: "WC"},
	"durbanville":     {Canonical: "durbanville", Province: "WC"},
	"claremont":       {Canonical: "claremont", Province: "WC"},
	"sea point":       {Canonical: "sea-point", Province: "WC"},
	"green point":     {Canonical: "green-point", Province: "WC"},
	"observatory":     {Canonical: "observatory", Province: "WC"},
	"muizenberg":      {Canonical: "muizenberg", Province: "WC"},
	"fish hoek":       {Canonical: "fish-hoek", Province: "WC"},
	"hout bay":        {Canonical: "hout-bay", Province: "WC"},
	"george":          {Canonical: "george", Province: "WC"},
	"knysna":          {Canonical: "knysna", Province: "WC"},
	"mossel bay":      {Canonical: "mossel-bay", Province: "WC"},
	"hermanus":        {Canonical: "hermanus", Province: "WC"},
	"worcester":       {Canonical: "worcester", Province: "WC"},
	"milnerton":       {Canonical: "milnerton", Province: "WC"},
	"table view":      {Canonical: "table-view", Province: "WC"},
	"constantia":      {Canonical: "constantia", Province: "WC"},
	"rondebosch":      {Canonical: "rondebosch", Province: "WC"},
	"wynberg":         {Canonical: "wynberg", Province: "WC"},
	"mitchells plain": {Canonical: "mitchells-plain", Province: "WC"},
	"khayelitsha":     {Canonical: "khayelitsha", Province: "WC"},

	// KwaZulu-Natal
	"durban":           {Canonical: "durban", Province: "KZN"},
	"ethekwini":        {Canonical: "durban", Province: "KZN"},
	"umhlanga":         {Canonical: "umhlanga", Province: "KZN"},
	"ballito":          {Canonical: "ballito", Province: "KZN"},
	"pietermaritzburg": {Canonical: "pietermaritzburg", Province: "KZN"},
	"pinetown":         {Canonical: "pinetown", Province: "KZN"},
	"westville":        {Canonical: "westville", Province: "KZN"},
	"amanzimtoti":      {Canonical: "amanzimtoti", Province: "KZN"},
	"richards bay":     {Canonical: "richards-bay", Province: "KZN"},
	"newcastle":        {Canonical: "newcastle", Province: "KZN"},
	"port shepstone":   {Canonical: "port-shepstone", Province: "KZN"},

	// Eastern Cape
	"gqeberha":       {Canonical: "gqeberha", Province: "EC"},
	"port elizabeth": {Canonical: "gqeberha", Province: "EC"},
	"east london":    {Canonical: "east-london", Province: "EC"},
	"mthatha":        {Canonical: "mthatha", Province: "EC"},
	"makhanda":       {Canonical: "makhanda", Province: "EC"},
	"grahamstown":    {Canonical: "makhanda", Province: "EC"},
	"jeffreys bay":   {Canonical: "jeffreys-bay", Province: "EC"},

	// Free State
	"bloemfontein": {Canonical: "bloemfontein", Province: "FS"},
	"welkom":       {Canonical: "welkom", Province: "FS"},
	"bethlehem":    {Canonical: "bethlehem", Province: "FS"},

	// North West
	"rustenburg":    {Canonical: "rustenburg", Province: "NW"},
	"potchefstroom": {Canonical: "potchefstroom", Province: "NW"},
	"mahikeng":      {Canonical: "mahikeng", Province: "NW"},
	"klerksdorp":    {Canonical: "klerksdorp", Province: "NW"},

	// Limpopo
	"polokwane":   {Canonical: "polokwane", Province: "LP"},
	"tzaneen":     {Canonical: "tzaneen", Province: "LP"},
	"thohoyandou": {Canonical: "thohoyandou", Province: "LP"},

	// Mpumalanga
	"mbombela":   {Canonical: "mbombela", Province: "MP"},
	"nelspruit":  {Canonical: "mbombela", Province: "MP"},
	"witbank":    {Canonical: "emalahleni", Province: "MP"},
	"emalahleni": {Canonical: "emalahleni", Province: "MP"},
	"middelburg": {Canonical: "middelburg", Province: "MP"},

	// Northern Cape
	"kimberley": {Canonical: "kimberley", Province: "NC"},
	"upington":  {Canonical: "upington", Province: "NC"},
}

var prefixesToRemove = []string{
	"city of ",
	"greater ",
	"the ",
}

// IsKnownPlace checks whether the given name is in the gazetteer.
func IsKnownPlace(place string) bool {
	if place == "" {
		return false
	}
	_, ok := saPlaces[normalizeForLookup(place)]
	return ok
}

// NormalizePlaceName returns the canonical slug form of a place name.
// Unknown places get a best-effort slug.
func NormalizePlaceName(place string) string {
	if place == "" {
		return ""
	}
	if info, ok := saPlaces[normalizeForLookup(place)]; ok {
		return info.Canonical
	}
	return toSlug(place)
}

// ProvinceForPlace returns the province code for a gazetteer entry.
func ProvinceForPlace(place string) (string, bool) {
	if place == "" {
		return "", false
	}
	if info, ok := saPlaces[normalizeForLookup(place)]; ok {
		return info.Province, true
	}
	return "", false
}

// PlaceNames returns every lookup key in the gazetteer.
// Used to seed the extractor's location scanner.
func PlaceNames() []string {
	names := make([]string, 0, len(saPlaces))
	for name := range saPlaces {
		names = append(names, name)
	}
	return names
}

// normalizeForLookup prepares a place name for map lookup.
func normalizeForLookup(place string) string {
	s := strings.ToLower(strings.TrimSpace(place))

	for _, prefix := range prefixesToRemove {
		if after, found := strings.CutPrefix(s, prefix); found {
			s = after
			break
		}
	}

	return removeAccents(s)
}

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
)

// toSlug converts a place name to a URL-safe slug.
func toSlug(place string) string {
	s := strings.ToLower(strings.TrimSpace(place))

	for _, prefix := range prefixesToRemove {
		if after, found := strings.CutPrefix(s, prefix); found {
			s = after
			break
		}
	}

	s = removeAccents(s)
	s = slugInvalidChars.ReplaceAllString(s, "-")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// removeAccents strips diacritical marks from a string.
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
