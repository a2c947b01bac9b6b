package main

import (
	"bazaar/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.VendorRegistrationRequestModel{},
		model.UserModel{},
		model.VendorProfileModel{},
		model.VendorSubscriptionModel{},
		model.ProductModel{},
		model.OrderModel{},
		model.NotificationModel{},
		model.ConversationModel{},
		model.ChatMessageModel{},
		model.AnalyticsRollupModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
