package httpserver

import (
	"github.com/samber/lo"

	"github.com/Skotchmaster/marketplace/internal/domain"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

func storeListItem(d domain.StoreDetails) transport.StoreListItem {
	return transport.StoreListItem{
		ID:          d.Store.ID,
		Name:        d.Store.Name,
		Description: d.Store.Description,
		Seller: transport.SellerResponse{
			ID:        d.Seller.ID,
			FirstName: d.Seller.User.FirstName,
			LastName:  d.Seller.User.LastName,
		},
		SellerName:   d.SellerName,
		ProductCount: d.ProductCount,
	}
}

func storeResponse(d domain.StoreDetails) transport.StoreResponse {
	products := d.Products
	if products == nil {
		products = []models.Product{}
	}
	return transport.StoreResponse{
		StoreListItem: storeListItem(d),
		Products:      lo.Map(products, func(p models.Product, _ int) transport.ProductResponse { return productResponse(p) }),
		CreatedDate:   transport.FormatDate(d.Store.CreatedDate),
	}
}

func productResponse(p models.Product) transport.ProductResponse {
	return transport.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Location:    p.Location,
		CustomerID:  p.CustomerID,
		CreatedDate: transport.FormatDate(p.CreatedAt),
	}
}

func customerResponse(c models.Customer) transport.CustomerResponse {
	return transport.CustomerResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Username:    c.User.Username,
		FirstName:   c.User.FirstName,
		LastName:    c.User.LastName,
		PhoneNumber: c.PhoneNumber,
		Address:     c.Address,
	}
}

func ordersReport(r *service.OrdersReport) transport.OrdersReport {
	return transport.OrdersReport{
		Status: string(r.Status),
		Orders: lo.Map(r.Lines, func(line domain.OrderLine, _ int) transport.OrderReportLine {
			return transport.OrderReportLine{
				ID:            line.Order.ID,
				CustomerID:    line.Order.CustomerID,
				CustomerName:  line.CustomerName,
				PaymentTypeID: line.Order.PaymentTypeID,
				CreatedDate:   transport.FormatDate(line.Order.CreatedAt),
				Total:         domain.FormatTotal(line.Total),
			}
		}),
	}
}
