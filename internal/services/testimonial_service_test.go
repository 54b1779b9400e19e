package services_test

import (
	"testing"

	"bakehouse/internal/models"
	"bakehouse/internal/repositories"
	"bakehouse/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestTestimonialService_CreateAndList(t *testing.T) {
	service := services.NewTestimonialService(repositories.NewMemoryTestimonialRepository())

	testimonial := &models.Testimonial{
		Name:    "Alex Regular",
		Message: "The sourdough is worth the queue.",
		Rating:  5,
	}
	assert.NoError(t, service.CreateTestimonial(testimonial))
	assert.NotEmpty(t, testimonial.ID)

	testimonials, err := service.GetTestimonials()
	assert.NoError(t, err)
	assert.Len(t, testimonials, 1)
	assert.Equal(t, "Alex Regular", testimonials[0].Name)
}

func TestTestimonialService_RatingBounds(t *testing.T) {
	service := services.NewTestimonialService(repositories.NewMemoryTestimonialRepository())

	for _, rating := range []int{0, 6} {
		err := service.CreateTestimonial(&models.Testimonial{
			Name:    "Alex Regular",
			Message: "m",
			Rating:  rating,
		})
		assert.Error(t, err, "rating %d should be rejected", rating)
	}
}

func TestTestimonialService_Delete(t *testing.T) {
	service := services.NewTestimonialService(repositories.NewMemoryTestimonialRepository())

	testimonial := &models.Testimonial{Name: "Alex Regular", Message: "m", Rating: 4}
	assert.NoError(t, service.CreateTestimonial(testimonial))

	assert.NoError(t, service.DeleteTestimonial(testimonial.ID))

	testimonials, err := service.GetTestimonials()
	assert.NoError(t, err)
	assert.Empty(t, testimonials)

	assert.Error(t, service.DeleteTestimonial("ghost"))
}
