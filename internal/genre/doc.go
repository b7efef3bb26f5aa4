// Package genre collapses raw record genre tags into canonical broad
// genres and reshapes the resulting buckets for rendering: artist
// majority reassignment, composite "Folk, World, & Country" splitting,
// and the merge of undersized buckets into Misc.
package genre
