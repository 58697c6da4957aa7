package catalog

import (
	"math"

	"github.com/mrlokans/bookcatalog/internal/domain"
)

// RatingStats aggregates the reviews of a single book.
type RatingStats struct {
	// Histogram counts reviews per rating, indexed 1..5.
	Histogram map[int]int `json:"histogram"`
	Count     int         `json:"count"`
	Average   float64     `json:"average"`
	Stars     int         `json:"stars"`
}

// CalculateRatingStats computes the histogram, the average rounded to one
// decimal (half away from zero) and the star bucket. A book with no reviews
// gets average 0 and 0 stars.
func CalculateRatingStats(reviews []*domain.Review) RatingStats {
	stats := RatingStats{Histogram: make(map[int]int, domain.MaxRating)}
	for rating := domain.MinRating; rating <= domain.MaxRating; rating++ {
		stats.Histogram[rating] = 0
	}
	for _, review := range reviews {
		stats.Histogram[review.Rating()]++
		stats.Count++
	}
	if stats.Count == 0 {
		return stats
	}
	stats.Average = roundedAverage(reviews)
	stats.Stars = starBucket(stats.Average)
	return stats
}

func averageRating(reviews []*domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating()
	}
	return float64(sum) / float64(len(reviews))
}

func roundedAverage(reviews []*domain.Review) float64 {
	return math.Round(averageRating(reviews)*10) / 10
}

func starBucket(average float64) int {
	switch {
	case average >= 4.5:
		return 5
	case average >= 3.5:
		return 4
	case average >= 2.5:
		return 3
	case average >= 1.5:
		return 2
	case average >= 0.5:
		return 1
	default:
		return 0
	}
}
