package main

type sessionKey string

const userEmailSessionKey = sessionKey("userEmail")
