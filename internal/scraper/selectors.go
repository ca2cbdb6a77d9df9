package scraper

// CSS selectors for the news site's search UI. Kept in one place so the
// control flow never hardcodes DOM details inline.
const (
	selectorConsentButton = "#onetrust-accept-btn-handler"
	selectorFancyboxClose = ".fancybox-item.fancybox-close"

	selectorSearchButton = ".SearchOverlay-search-button"
	selectorSearchInput  = ".SearchOverlay-search-input"
	selectorSearchSubmit = ".SearchOverlay-search-submit"
	selectorSortSelect   = ".Select-input"

	selectorFiltersOpen   = ".SearchResultsModule-filters-open"
	selectorFilterContent = ".SearchFilter-content"
	selectorCheckboxLabel = ".CheckboxInput-label"
	selectorFiltersApply  = ".SearchResultsModule-filters-applyButton"

	selectorResults      = ".SearchResultsModule-results"
	selectorResultItem   = ".PagePromo"
	selectorLink         = ".Link"
	selectorDescription  = ".PagePromo-description"
	selectorImage        = ".Image"
	selectorTimestampNow = ".Timestamp-template-now"
	selectorTimestamp    = ".Timestamp-template"

	selectorNextPage = ".Pagination-nextPage"
)

// attrTitle is the attribute the site exposes the human title through; the
// promo card has no dedicated title text node.
const attrTitle = "data-gtm-region"

// sortNewest is the visible label of the newest-first sort option.
const sortNewest = "Newest"
