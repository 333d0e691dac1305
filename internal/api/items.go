package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/service"
)

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	wishlistID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid wishlist id")
		return
	}
	s.logger.Infof("Request for items of wishlist [%d]", wishlistID)

	items, err := s.svc.ListItems(r.Context(), wishlistID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	out := make([]map[string]any, len(items))
	for i, item := range items {
		out[i] = item.Serialize()
	}
	s.logger.Infof("Returning %d items", len(out))
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	wishlistID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid wishlist id")
		return
	}
	s.logger.Infof("Request to add an Item to wishlist [%d]", wishlistID)
	if !s.requireJSON(w, r) {
		return
	}

	data, err := decodeJSON(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := &models.Item{}
	if err := item.Deserialize(data); err != nil {
		s.respondServiceError(w, err)
		return
	}
	item.WishlistID = wishlistID

	if _, err := s.svc.CreateItem(r.Context(), item); err != nil {
		s.respondServiceError(w, err)
		return
	}

	w.Header().Set("Location", locationURL(r, fmt.Sprintf("/wishlists/%d/items/%d", wishlistID, item.ID)))
	s.respondJSON(w, http.StatusCreated, item.Serialize())
}

func (s *Server) itemIDs(w http.ResponseWriter, r *http.Request) (wishlistID, itemID int64, ok bool) {
	wishlistID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid wishlist id")
		return 0, 0, false
	}
	itemID, err = pathID(r, "item_id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid item id")
		return 0, 0, false
	}
	return wishlistID, itemID, true
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	wishlistID, itemID, ok := s.itemIDs(w, r)
	if !ok {
		return
	}

	item, err := s.svc.FindItem(r.Context(), wishlistID, itemID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if item == nil {
		s.respondError(w, http.StatusNotFound,
			fmt.Sprintf("Item with id '%d' was not found in wishlist '%d'.", itemID, wishlistID))
		return
	}

	s.respondJSON(w, http.StatusOK, item.Serialize())
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	wishlistID, itemID, ok := s.itemIDs(w, r)
	if !ok {
		return
	}
	s.logger.Infof("Request to Update item [%d] in wishlist [%d]", itemID, wishlistID)
	if !s.requireJSON(w, r) {
		return
	}

	item, err := s.svc.FindItem(r.Context(), wishlistID, itemID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if item == nil {
		s.respondError(w, http.StatusNotFound,
			fmt.Sprintf("Item with id '%d' was not found in wishlist '%d'.", itemID, wishlistID))
		return
	}

	data, err := decodeJSON(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := item.Deserialize(data); err != nil {
		s.respondServiceError(w, err)
		return
	}

	if _, err := s.svc.UpdateItem(r.Context(), item); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, item.Serialize())
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	wishlistID, itemID, ok := s.itemIDs(w, r)
	if !ok {
		return
	}
	s.logger.Infof("Request to Delete item [%d] from wishlist [%d]", itemID, wishlistID)

	if err := s.svc.DeleteItem(r.Context(), wishlistID, itemID); err != nil && !errors.Is(err, service.ErrItemNotFound) {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
