package model

import "time"

type RegionMessage struct {
	ID         string    `json:"id"`
	Region     Region    `json:"region"`
	SeniorID   string    `json:"userId"`
	SeniorName string    `json:"userName"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"timestamp"`
}

type RegionPostRequest struct {
	Message string `json:"message"`
}

type RegionFeed struct {
	Region   Region          `json:"region"`
	Messages []RegionMessage `json:"messages"`
}
