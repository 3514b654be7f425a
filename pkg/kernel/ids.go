package kernel

import "github.com/google/uuid"

type EnhancementID string

func NewEnhancementID() EnhancementID   { return EnhancementID(uuid.NewString()) }
func (id EnhancementID) String() string { return string(id) }
func (id EnhancementID) IsEmpty() bool  { return id == "" }

type JobID string

func (id JobID) String() string { return string(id) }
func (id JobID) IsEmpty() bool  { return id == "" }
