package integration

import (
	"fmt"
	"testing"
)

// TestFavoriteLifecycle exercises adding, listing, fetching, and removing a
// favorite for an authenticated user.
func TestFavoriteLifecycle(t *testing.T) {
	_, _, accessToken := registerAndLogin(t, "favlife")

	// Add a favorite.
	addStatus, addData := httpPostWithAuth(t, baseURL(apiPort)+"/favorite/11007", nil, accessToken)
	requireStatus(t, addStatus, 201)
	if got := extractField(addData, "drink_id"); got != float64(11007) {
		t.Fatalf("expected drink_id 11007 in response, got %v", got)
	}

	// The profile should now list it.
	profileStatus, profileData := httpGetWithAuth(t, baseURL(apiPort)+"/user", accessToken)
	requireStatus(t, profileStatus, 200)
	ids := favoriteIDs(t, profileData)
	if len(ids) != 1 || ids[0] != 11007 {
		t.Fatalf("expected favorites [11007], got %v", ids)
	}

	// Fetch the single favorite.
	getStatus, getData := httpGetWithAuth(t, baseURL(apiPort)+"/favorite/11007", accessToken)
	requireStatus(t, getStatus, 200)
	if got := extractField(getData, "drink_id"); got != float64(11007) {
		t.Fatalf("expected drink_id 11007 from get, got %v", got)
	}

	// Remove it; the profile should be empty again.
	delStatus, _ := httpDelete(t, baseURL(apiPort)+"/favorite/11007", nil, accessToken)
	requireStatus(t, delStatus, 200)

	afterStatus, afterData := httpGetWithAuth(t, baseURL(apiPort)+"/user", accessToken)
	requireStatus(t, afterStatus, 200)
	if ids := favoriteIDs(t, afterData); len(ids) != 0 {
		t.Fatalf("expected no favorites after removal, got %v", ids)
	}
}

// TestFavoriteDuplicate verifies that favoriting the same drink twice returns 400.
func TestFavoriteDuplicate(t *testing.T) {
	_, _, accessToken := registerAndLogin(t, "favdup")

	status1, _ := httpPostWithAuth(t, baseURL(apiPort)+"/favorite/11118", nil, accessToken)
	requireStatus(t, status1, 201)

	status2, data2 := httpPostWithAuth(t, baseURL(apiPort)+"/favorite/11118", nil, accessToken)
	requireStatus(t, status2, 400)
	if got := extractString(t, data2, "message"); got != "user has already favorited this drink" {
		t.Fatalf("expected duplicate-favorite message, got %q", got)
	}
}

// TestUserDeletionRemovesFavorites verifies that deleting a user removes the
// user's favorites with it: the stale token no longer resolves, and an
// account re-created under the same username starts with no favorites.
func TestUserDeletionRemovesFavorites(t *testing.T) {
	username, password, accessToken := registerAndLogin(t, "cascade")

	// Favorite a couple of drinks.
	for _, drinkID := range []int{11007, 11118} {
		status, _ := httpPostWithAuth(t, fmt.Sprintf("%s/favorite/%d", baseURL(apiPort), drinkID), nil, accessToken)
		requireStatus(t, status, 201)
	}

	profileStatus, profileData := httpGetWithAuth(t, baseURL(apiPort)+"/user", accessToken)
	requireStatus(t, profileStatus, 200)
	if ids := favoriteIDs(t, profileData); len(ids) != 2 {
		t.Fatalf("expected 2 favorites before deletion, got %v", ids)
	}

	// Delete the account.
	delStatus, _ := httpDelete(t, baseURL(apiPort)+"/user", map[string]interface{}{
		"username": username,
		"password": password,
	}, "")
	requireStatus(t, delStatus, 200)

	// The old token now references a deleted account.
	staleStatus, _ := httpGetWithAuth(t, baseURL(apiPort)+"/user", accessToken)
	requireStatus(t, staleStatus, 404)

	// Re-registering the same username must start clean: the former
	// favorites were deleted along with the account.
	creds := map[string]interface{}{
		"username": username,
		"password": password,
	}
	regStatus, _ := httpPost(t, baseURL(apiPort)+"/user/register", creds)
	requireStatus(t, regStatus, 201)

	loginStatus, loginData := httpPost(t, baseURL(apiPort)+"/user/login", creds)
	requireStatus(t, loginStatus, 200)
	newToken := extractString(t, loginData, "access_token")

	newProfileStatus, newProfileData := httpGetWithAuth(t, baseURL(apiPort)+"/user", newToken)
	requireStatus(t, newProfileStatus, 200)
	if ids := favoriteIDs(t, newProfileData); len(ids) != 0 {
		t.Fatalf("expected no favorites after account re-creation, got %v", ids)
	}
}
