package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Kerhoff/wishlists/internal/models"
	"github.com/Kerhoff/wishlists/internal/service"
)

func serializeWishlists(lists []*models.Wishlist) []map[string]any {
	out := make([]map[string]any, len(lists))
	for i, w := range lists {
		out[i] = w.Serialize()
	}
	return out
}

func (s *Server) handleListWishlists(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("Request for wishlist list")

	var (
		lists []*models.Wishlist
		err   error
	)
	if name := r.URL.Query().Get("name"); name != "" {
		lists, err = s.svc.FindWishlistsByName(r.Context(), name)
	} else {
		lists, err = s.svc.AllWishlists(r.Context())
	}
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.logger.Infof("Returning %d wishlists", len(lists))
	s.respondJSON(w, http.StatusOK, serializeWishlists(lists))
}

func (s *Server) handleCreateWishlist(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("Request to Create a Wishlist...")
	if !s.requireJSON(w, r) {
		return
	}

	data, err := decodeJSON(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	wishlist := &models.Wishlist{}
	if err := wishlist.Deserialize(data); err != nil {
		s.respondServiceError(w, err)
		return
	}

	if _, err := s.svc.CreateWishlist(r.Context(), wishlist); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.logger.Infof("Wishlist with new id [%d] saved!", wishlist.ID)

	w.Header().Set("Location", locationURL(r, fmt.Sprintf("/wishlists/%d", wishlist.ID)))
	s.respondJSON(w, http.StatusCreated, wishlist.Serialize())
}

func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid wishlist id")
		return
	}

	wishlist, err := s.svc.FindWishlist(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if wishlist == nil {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Wishlist with id '%d' was not found.", id))
		return
	}

	s.respondJSON(w, http.StatusOK, wishlist.Serialize())
}

func (s *Server) handleUpdateWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid wishlist id")
		return
	}
	s.logger.Infof("Request to Update wishlist with id [%d]", id)
	if !s.requireJSON(w, r) {
		return
	}

	wishlist, err := s.svc.FindWishlist(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	if wishlist == nil {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Wishlist with id '%d' was not found.", id))
		return
	}

	data, err := decodeJSON(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := wishlist.Deserialize(data); err != nil {
		s.respondServiceError(w, err)
		return
	}
	wishlist.ID = id

	if _, err := s.svc.UpdateWishlist(r.Context(), wishlist); err != nil {
		s.respondServiceError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, wishlist.Serialize())
}

func (s *Server) handleDeleteWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid wishlist id")
		return
	}
	s.logger.Infof("Request to Delete wishlist with id [%d]", id)

	if err := s.svc.DeleteWishlist(r.Context(), id); err != nil && !errors.Is(err, service.ErrWishlistNotFound) {
		s.respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
