// Package grid renders square cover collages: one JPEG per genre
// bucket, sized to the smallest square that holds every cover, padded
// with repeats when the count is not a perfect square.
package grid
