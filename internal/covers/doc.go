// Package covers builds a full-size cover gallery for top-selling
// releases: release ids are read from exported top-seller CSVs, each
// release's primary image is downloaded, and a browsable static page
// is written alongside the gallery data.
package covers
