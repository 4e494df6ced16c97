// Package catalog loads the fixed book catalog and answers the filter
// queries the browsing API needs: track/major equality, keyword substring
// search, and collated track/major option lists.
package catalog
