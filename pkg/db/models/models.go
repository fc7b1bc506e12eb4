package models

// All lists every model for auto-migration in dev and tests.
func All() []any {
	return []any{
		&Category{},
		&MotorcycleModel{},
		&Product{},
		&ProductVariant{},
		&ProductImage{},
		&Order{},
		&OrderItem{},
		&Testimonial{},
		&SupportTicket{},
	}
}
