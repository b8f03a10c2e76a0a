package handlers

import "service-dispatch/internal/domain"

func createResultToResponse(res domain.CreateResult) createAssignmentResponse {
	partners := make([]partnerDTO, 0, len(res.NearestPartners))
	for _, c := range res.NearestPartners {
		partners = append(partners, partnerDTO{CourierID: c.CourierID, DistanceKm: c.DistanceKm})
	}
	return createAssignmentResponse{
		AssignmentID:    res.AssignmentID.String(),
		OrderID:         res.OrderID,
		NearestPartners: partners,
	}
}

func acceptResultToResponse(res domain.AcceptResult) acceptResponse {
	return acceptResponse{
		AssignmentID: res.AssignmentID.String(),
		OrderID:      res.OrderID,
		Status:       string(domain.AssignmentRiderAssigned),
		AssignedAt:   res.AssignedAt,
	}
}

func progressResultToResponse(res domain.ProgressResult) progressResponse {
	return progressResponse{
		AssignmentID: res.AssignmentID.String(),
		OrderID:      res.OrderID,
		Status:       string(res.Status),
		OrderStatus:  string(res.OrderStatus),
		At:           res.At,
	}
}

func availableToResponse(list []domain.AvailableAssignment) []availableDTO {
	out := make([]availableDTO, 0, len(list))
	for _, a := range list {
		out = append(out, availableDTO{
			AssignmentID:    a.AssignmentID.String(),
			OrderID:         a.OrderID,
			DistanceKm:      a.DistanceKm,
			DeliveryFee:     a.DeliveryFee,
			PickupAddress:   a.PickupAddress,
			DeliveryAddress: a.DeliveryAddress,
			RecipientName:   a.RecipientName,
			RecipientPhone:  a.RecipientPhone,
			TotalAmount:     a.TotalAmount,
			ItemCount:       a.ItemCount,
			CreatedAt:       a.CreatedAt,
		})
	}
	return out
}
