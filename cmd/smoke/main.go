// Command smoke drives a running server through a post's lifecycle: create,
// react twice, comment, read the thread, delete. The user must already exist
// in the graph.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	baseURL := getenv("SMOKE_BASE_URL", "http://localhost:3001")
	userID := getenv("SMOKE_USER_ID", "smoke-user")
	secret := os.Getenv("JWT_ACCESS_TOKEN_SECRET")
	if secret == "" {
		fmt.Println("JWT_ACCESS_TOKEN_SECRET must be set")
		os.Exit(1)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(5 * time.Minute).Unix(),
	}).SignedString([]byte(secret))
	if err != nil {
		fmt.Printf("Error signing token: %v\n", err)
		os.Exit(1)
	}

	c := &client{baseURL: baseURL, token: token, http: &http.Client{Timeout: 10 * time.Second}}

	fmt.Println("1. Creating post...")
	var created struct {
		Post struct {
			ID int64 `json:"postID"`
		} `json:"post"`
	}
	c.must("POST", "/api/posts/add", map[string]any{
		"title":       "Smoke test",
		"description": "Created by the smoke client",
		"body":        "<p>hello</p>",
	}, &created)
	postPath := fmt.Sprintf("/api/posts/%d", created.Post.ID)
	fmt.Printf("PASSED: created post %d\n", created.Post.ID)

	fmt.Println("2. Toggling reaction...")
	var toggled struct {
		Result string `json:"result"`
	}
	c.must("POST", postPath+"/react", map[string]string{"type": "Like"}, &toggled)
	expect("reacted", toggled.Result)
	c.must("POST", postPath+"/react", map[string]string{"type": "Like"}, &toggled)
	expect("removed", toggled.Result)
	fmt.Println("PASSED: reaction toggled on and off")

	fmt.Println("3. Commenting...")
	c.must("POST", postPath+"/comment", map[string]string{"text": "first"}, nil)
	var thread struct {
		Comments []json.RawMessage `json:"comments"`
	}
	c.must("GET", fmt.Sprintf("/api/post/%d/comments", created.Post.ID), nil, &thread)
	if len(thread.Comments) != 1 {
		fmt.Printf("FAILED: expected 1 thread record, got %d\n", len(thread.Comments))
		os.Exit(1)
	}
	fmt.Println("PASSED: comment thread")

	fmt.Println("4. Deleting post...")
	c.must("DELETE", fmt.Sprintf("/api/posts/delete/%d", created.Post.ID), nil, nil)
	if status := c.status("GET", fmt.Sprintf("/api/post/%d", created.Post.ID)); status != http.StatusNotFound {
		fmt.Printf("FAILED: expected 404 after delete, got %d\n", status)
		os.Exit(1)
	}
	fmt.Println("PASSED: post deleted")
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *client) do(method, endpoint string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: c.token})
	return c.http.Do(req)
}

func (c *client) must(method, endpoint string, payload, out any) {
	resp, err := c.do(method, endpoint, payload)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		fmt.Printf("%s %s failed with status %d: %s\n", method, endpoint, resp.StatusCode, string(respBody))
		os.Exit(1)
	}
	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			fmt.Printf("Error decoding %s: %v\n", endpoint, err)
			os.Exit(1)
		}
	}
}

func (c *client) status(method, endpoint string) int {
	resp, err := c.do(method, endpoint, nil)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func expect(want, got string) {
	if want != got {
		fmt.Printf("FAILED: expected %q, got %q\n", want, got)
		os.Exit(1)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
