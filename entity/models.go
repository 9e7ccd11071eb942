package entity

import "gorm.io/gorm/schema"

// NamingStrategy is shared by every connection so raw joins can rely on
// the t_ prefixed singular table names.
var NamingStrategy = schema.NamingStrategy{
	TablePrefix:   "t_",
	SingularTable: true,
}

// MessagingModels are the tables owned by the messaging service.
func MessagingModels() []any {
	return []any{
		&ChatRoom{},
		&Message{},
		&MessageReadReceipt{},
	}
}

// ReferenceModels are owned elsewhere and only read here. They are migrated
// in development so a local database is self-contained.
func ReferenceModels() []any {
	return []any{
		&Campaign{},
		&Application{},
		&Payment{},
		&PaymentLineItem{},
	}
}
